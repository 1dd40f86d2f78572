package service

import "fmt"

func RoadmapPrompt(subject, difficulty string) string {
	return fmt.Sprintf("Generate a %s roadmap for learning %s. Include essential topics, skills, and tools. Format the response in clear sections with bullet points.", difficulty, subject)
}

// DocumentChatPrompt limits the model to the first 15000 characters of the
// document.
func DocumentChatPrompt(document, question string) string {
	return fmt.Sprintf(`Context: %s

Question: %s

Instructions: 
1. Answer based only on the provided context
2. If the information isn't in the context, say "%s"
3. Keep responses concise and relevant

Answer:`, truncateRunes(document, documentContextRunes), question, MsgNotFoundInDoc)
}

func QuizPrompt(text string, n int) string {
	return fmt.Sprintf(`Generate %d quiz questions based on the following content:
%s
Provide questions with four answer options (A, B, C, D). Also, include the correct answer.
Format each question as follows:
Question 1: [Your question here]
A. [Option A]
B. [Option B]
C. [Option C]
D. [Option D]
**Answer:** [Correct Option]`, n, text)
}

func TopicNotesPrompt(topic string) string {
	return fmt.Sprintf(`Write study notes in markdown on the topic "%[1]s". Use this outline:
# Notes on %[1]s
## Overview
A comprehensive introduction with foundational concepts and principles.
## Key Concepts
Bullet points covering definitions and terminology, core principles and theories, historical context, and current applications.
## Detailed Analysis
Technical specifications or methodologies, real-world examples, best practices, and common challenges with their solutions.
## Conclusion
A summary of the essential points and their practical applications.`, topic)
}

func ContentNotesPrompt(text string) string {
	return fmt.Sprintf(`Write study notes in markdown for the following content:
%s

Use this outline:
# Generated Notes
## Key Points
Bullet points with the main concepts, supporting evidence and examples, important relationships, and critical takeaways.
## Summary
A short overview of the most important aspects for understanding and retention.
## Additional Resources
Suggested further reading, related topics, and practice exercises.`, text)
}
