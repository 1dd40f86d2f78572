package handler_test

import (
	"context"

	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/service"
)

// --- Manual Mocks ---

type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	LoginFunc                func(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	HandleGoogleCallbackFunc func(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *domain.User, error)
	ValidateJWTFunc          func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	RefreshTokenFunc         func(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	LogoutFunc               func(ctx context.Context, sessionID string) error
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}

func (m *MockAuthService) GetGoogleLoginURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.TokenResponse, *domain.User, error) {
	if m.HandleGoogleCallbackFunc != nil {
		return m.HandleGoogleCallbackFunc(ctx, code, receivedState, expectedState)
	}
	panic("MockAuthService.HandleGoogleCallbackFunc not implemented")
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, domain.NewUnauthorizedError("Invalid token")
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshTokenString)
	}
	panic("MockAuthService.RefreshTokenFunc not implemented")
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

type MockGeneratorService struct {
	ChatFunc         func(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
	DocumentChatFunc func(ctx context.Context, req dto.DocumentChatRequest) (*dto.DocumentChatResponse, error)
	RoadmapFunc      func(ctx context.Context, userID string, req dto.RoadmapRequest) (*dto.RoadmapResponse, error)
	NotesFunc        func(ctx context.Context, userID string, req dto.NotesRequest) (*dto.NotesResponse, error)
	QuizFunc         func(ctx context.Context, userID string, req dto.QuizGenerateRequest) (*dto.QuizResponse, error)
	QuizFromURLFunc  func(ctx context.Context, userID string, req dto.QuizURLRequest) (*dto.QuizResponse, error)
	GradeFunc        func(ctx context.Context, userID string, req dto.GradeRequest) (*domain.GradeResult, error)
}

func (m *MockGeneratorService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	panic("MockGeneratorService.ChatFunc not implemented")
}

func (m *MockGeneratorService) DocumentChat(ctx context.Context, req dto.DocumentChatRequest) (*dto.DocumentChatResponse, error) {
	if m.DocumentChatFunc != nil {
		return m.DocumentChatFunc(ctx, req)
	}
	panic("MockGeneratorService.DocumentChatFunc not implemented")
}

func (m *MockGeneratorService) Roadmap(ctx context.Context, userID string, req dto.RoadmapRequest) (*dto.RoadmapResponse, error) {
	if m.RoadmapFunc != nil {
		return m.RoadmapFunc(ctx, userID, req)
	}
	panic("MockGeneratorService.RoadmapFunc not implemented")
}

func (m *MockGeneratorService) Notes(ctx context.Context, userID string, req dto.NotesRequest) (*dto.NotesResponse, error) {
	if m.NotesFunc != nil {
		return m.NotesFunc(ctx, userID, req)
	}
	panic("MockGeneratorService.NotesFunc not implemented")
}

func (m *MockGeneratorService) Quiz(ctx context.Context, userID string, req dto.QuizGenerateRequest) (*dto.QuizResponse, error) {
	if m.QuizFunc != nil {
		return m.QuizFunc(ctx, userID, req)
	}
	panic("MockGeneratorService.QuizFunc not implemented")
}

func (m *MockGeneratorService) QuizFromURL(ctx context.Context, userID string, req dto.QuizURLRequest) (*dto.QuizResponse, error) {
	if m.QuizFromURLFunc != nil {
		return m.QuizFromURLFunc(ctx, userID, req)
	}
	panic("MockGeneratorService.QuizFromURLFunc not implemented")
}

func (m *MockGeneratorService) Grade(ctx context.Context, userID string, req dto.GradeRequest) (*domain.GradeResult, error) {
	if m.GradeFunc != nil {
		return m.GradeFunc(ctx, userID, req)
	}
	panic("MockGeneratorService.GradeFunc not implemented")
}

type MockContentService struct {
	ExtractPDFFunc      func(ctx context.Context, filename string, data []byte) (*dto.ExtractTextResponse, error)
	ExtractURLFunc      func(ctx context.Context, url string) (*dto.ExtractTextResponse, error)
	AnalyzeDocumentFunc func(ctx context.Context, userID, filename string, data []byte) (*dto.AnalyzeDocumentResponse, error)
}

func (m *MockContentService) ExtractPDF(ctx context.Context, filename string, data []byte) (*dto.ExtractTextResponse, error) {
	if m.ExtractPDFFunc != nil {
		return m.ExtractPDFFunc(ctx, filename, data)
	}
	panic("MockContentService.ExtractPDFFunc not implemented")
}

func (m *MockContentService) ExtractURL(ctx context.Context, url string) (*dto.ExtractTextResponse, error) {
	if m.ExtractURLFunc != nil {
		return m.ExtractURLFunc(ctx, url)
	}
	panic("MockContentService.ExtractURLFunc not implemented")
}

func (m *MockContentService) PageBodyText(ctx context.Context, url string) (string, error) {
	panic("MockContentService.PageBodyText not implemented")
}

func (m *MockContentService) AnalyzeDocument(ctx context.Context, userID, filename string, data []byte) (*dto.AnalyzeDocumentResponse, error) {
	if m.AnalyzeDocumentFunc != nil {
		return m.AnalyzeDocumentFunc(ctx, userID, filename, data)
	}
	panic("MockContentService.AnalyzeDocumentFunc not implemented")
}

type MockCalculatorService struct {
	EvaluateFunc func(ctx context.Context, userID string, req dto.CalculatorRequest) (*dto.CalculatorResponse, error)
	HistoryFunc  func(ctx context.Context, userID string) (*dto.HistoryResponse, error)
	ClearFunc    func(ctx context.Context, userID string) error
}

func (m *MockCalculatorService) Evaluate(ctx context.Context, userID string, req dto.CalculatorRequest) (*dto.CalculatorResponse, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, userID, req)
	}
	panic("MockCalculatorService.EvaluateFunc not implemented")
}

func (m *MockCalculatorService) History(ctx context.Context, userID string) (*dto.HistoryResponse, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID)
	}
	panic("MockCalculatorService.HistoryFunc not implemented")
}

func (m *MockCalculatorService) Clear(ctx context.Context, userID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, userID)
	}
	panic("MockCalculatorService.ClearFunc not implemented")
}

type MockUserService struct {
	GetUserProfileFunc      func(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateUserProfileFunc   func(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateProfilePhotoFunc  func(ctx context.Context, userID string, data []byte) (*dto.PhotoResponse, error)
	ListMaterialsFunc       func(ctx context.Context, userID string, kind string, pagination dto.Pagination) (*dto.MaterialsResponse, error)
	GetMaterialFunc         func(ctx context.Context, userID, materialID string) (*dto.MaterialResponse, error)
	DeleteMaterialFunc      func(ctx context.Context, userID, materialID string) error
	GetUserQuizAttemptsFunc func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizAttemptsResponse, error)
}

func (m *MockUserService) GetUserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	panic("MockUserService.GetUserProfileFunc not implemented")
}

func (m *MockUserService) UpdateUserProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if m.UpdateUserProfileFunc != nil {
		return m.UpdateUserProfileFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateUserProfileFunc not implemented")
}

func (m *MockUserService) UpdateProfilePhoto(ctx context.Context, userID string, data []byte) (*dto.PhotoResponse, error) {
	if m.UpdateProfilePhotoFunc != nil {
		return m.UpdateProfilePhotoFunc(ctx, userID, data)
	}
	panic("MockUserService.UpdateProfilePhotoFunc not implemented")
}

func (m *MockUserService) ListMaterials(ctx context.Context, userID string, kind string, pagination dto.Pagination) (*dto.MaterialsResponse, error) {
	if m.ListMaterialsFunc != nil {
		return m.ListMaterialsFunc(ctx, userID, kind, pagination)
	}
	panic("MockUserService.ListMaterialsFunc not implemented")
}

func (m *MockUserService) GetMaterial(ctx context.Context, userID, materialID string) (*dto.MaterialResponse, error) {
	if m.GetMaterialFunc != nil {
		return m.GetMaterialFunc(ctx, userID, materialID)
	}
	panic("MockUserService.GetMaterialFunc not implemented")
}

func (m *MockUserService) DeleteMaterial(ctx context.Context, userID, materialID string) error {
	if m.DeleteMaterialFunc != nil {
		return m.DeleteMaterialFunc(ctx, userID, materialID)
	}
	panic("MockUserService.DeleteMaterialFunc not implemented")
}

func (m *MockUserService) GetUserQuizAttempts(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizAttemptsResponse, error) {
	if m.GetUserQuizAttemptsFunc != nil {
		return m.GetUserQuizAttemptsFunc(ctx, userID, pagination)
	}
	panic("MockUserService.GetUserQuizAttemptsFunc not implemented")
}

var (
	_ service.AuthService       = (*MockAuthService)(nil)
	_ service.GeneratorService  = (*MockGeneratorService)(nil)
	_ service.ContentService    = (*MockContentService)(nil)
	_ service.CalculatorService = (*MockCalculatorService)(nil)
	_ service.UserService       = (*MockUserService)(nil)
)
