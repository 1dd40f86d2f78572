package service

import (
	"context"
	"strings"
	"time"

	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultAttemptsLimit  = 10
	maxAttemptsLimit      = 100
	defaultMaterialsLimit = 50
	maxMaterialsLimit     = 100
)

// PhotoSaver is implemented by *storage.PhotoStore.
type PhotoSaver interface {
	SavePhoto(ctx context.Context, userID string, data []byte) (string, error)
}

// UserService defines the interface for user-related operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateUserProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateProfilePhoto(ctx context.Context, userID string, data []byte) (*dto.PhotoResponse, error)
	ListMaterials(ctx context.Context, userID string, kind string, pagination dto.Pagination) (*dto.MaterialsResponse, error)
	GetMaterial(ctx context.Context, userID, materialID string) (*dto.MaterialResponse, error)
	DeleteMaterial(ctx context.Context, userID, materialID string) error
	GetUserQuizAttempts(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizAttemptsResponse, error)
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	attemptRepo  domain.QuizAttemptRepository
	materialRepo domain.MaterialRepository
	photos       PhotoSaver
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo domain.UserRepository,
	attemptRepo domain.QuizAttemptRepository,
	materialRepo domain.MaterialRepository,
	photos PhotoSaver,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		materialRepo: materialRepo,
		photos:       photos,
	}
}

func (s *userServiceImpl) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return user, nil
}

// GetUserProfile retrieves a user's profile information.
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProfileResponse(user)
	return &resp, nil
}

// UpdateUserProfile applies the non-nil fields of req.
func (s *userServiceImpl) UpdateUserProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if p := req.Preferences; p != nil {
		if p.Notifications != nil {
			user.Preferences.Notifications = *p.Notifications
		}
		if p.Theme != nil {
			user.Preferences.Theme = *p.Theme
		}
		if p.Language != nil {
			user.Preferences.Language = *p.Language
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	logger.Get().Info("User profile updated", zap.String("userID", userID))
	resp := dto.NewProfileResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) UpdateProfilePhoto(ctx context.Context, userID string, data []byte) (*dto.PhotoResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.photos.SavePhoto(ctx, userID, data)
	if err != nil {
		return nil, err
	}
	user.ProfilePictureURL = url
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return &dto.PhotoResponse{ProfilePictureURL: url}, nil
}

func (s *userServiceImpl) ListMaterials(ctx context.Context, userID string, kind string, pagination dto.Pagination) (*dto.MaterialsResponse, error) {
	switch domain.MaterialKind(kind) {
	case "", domain.MaterialQuiz, domain.MaterialNotes, domain.MaterialRoadmap, domain.MaterialAnalysis:
	default:
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("kind", kind)}
	}
	pagination.Normalize(defaultMaterialsLimit, maxMaterialsLimit)

	items, err := s.materialRepo.ListByUser(ctx, userID, domain.MaterialKind(kind), int64(pagination.Limit), int64(pagination.Offset))
	if err != nil {
		return nil, domain.NewInternalError("Failed to list study materials", err)
	}
	resp := &dto.MaterialsResponse{Materials: make([]dto.MaterialResponse, 0, len(items))}
	for i := range items {
		resp.Materials = append(resp.Materials, dto.NewMaterialResponse(&items[i]))
	}
	return resp, nil
}

func (s *userServiceImpl) GetMaterial(ctx context.Context, userID, materialID string) (*dto.MaterialResponse, error) {
	m, err := s.materialRepo.GetByID(ctx, userID, materialID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load study material", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError("Study material not found")
	}
	resp := dto.NewMaterialResponse(m)
	return &resp, nil
}

func (s *userServiceImpl) DeleteMaterial(ctx context.Context, userID, materialID string) error {
	return s.materialRepo.Delete(ctx, userID, materialID)
}

// GetUserQuizAttempts lists graded quizzes newest first.
func (s *userServiceImpl) GetUserQuizAttempts(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizAttemptsResponse, error) {
	pagination.Normalize(defaultAttemptsLimit, maxAttemptsLimit)

	attempts, total, err := s.attemptRepo.ListByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz attempts", err)
	}

	items := make([]dto.QuizAttemptItem, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, dto.QuizAttemptItem{
			ID:             a.ID,
			SourceType:     a.SourceType,
			TotalQuestions: a.TotalQuestions,
			CorrectCount:   a.CorrectCount,
			Score:          a.Score,
			Results:        a.Results,
			AttemptedAt:    a.AttemptedAt,
		})
	}
	return &dto.QuizAttemptsResponse{
		Attempts:       items,
		PaginationInfo: dto.NewPaginationInfo(int64(total), pagination),
	}, nil
}
