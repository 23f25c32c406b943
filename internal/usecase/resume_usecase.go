package usecase

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/Knnivedh/job-rec/internal/domain"
	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/domain/user"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
	"github.com/Knnivedh/job-rec/internal/infrastructure/storage"
	"github.com/Knnivedh/job-rec/internal/logger"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/resumeparser"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

type ResumeParser interface {
	Parse(ctx context.Context, data []byte, mimeType string) resumeparser.Result
}

type RecommendationInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

type UploadInput struct {
	UserID   uuid.UUID
	FileName string
	MimeType string
	Size     int64
	Data     []byte
}

// SaveError is a persistence failure after the file was stored. Detail
// carries a diagnostic for schema problems.
type SaveError struct {
	Detail string
	Cause  error
}

func (e *SaveError) Error() string { return ErrSaveResume.Error() }
func (e *SaveError) Unwrap() error { return ErrSaveResume }

type ResumeUsecase interface {
	Upload(ctx context.Context, in UploadInput) (resume.Resume, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
}

type Resume struct {
	users      user.Repository
	resumes    repository.ResumeRepository
	userSkills repository.UserSkillRepository
	storage    ObjectStorage
	parser     ResumeParser
	embedder   llm.Embedder
	cache      RecommendationInvalidator
	logger     *zap.Logger

	now func() time.Time
}

func NewResumeUsecase(
	users user.Repository,
	resumes repository.ResumeRepository,
	userSkills repository.UserSkillRepository,
	store ObjectStorage,
	parser ResumeParser,
	embedder llm.Embedder,
	cache RecommendationInvalidator,
	log *zap.Logger,
) *Resume {
	return &Resume{
		users:      users,
		resumes:    resumes,
		userSkills: userSkills,
		storage:    store,
		parser:     parser,
		embedder:   embedder,
		cache:      cache,
		logger:     logger.OrNop(log),
		now:        time.Now,
	}
}

// DetectMime resolves the upload content type. Browsers sometimes send an
// empty or generic type, in which case the extension decides.
func DetectMime(declared, fileName string) string {
	m := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(m, ";"); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	if m != "" && m != "application/octet-stream" {
		return m
	}
	switch strings.ToLower(path.Ext(fileName)) {
	case ".pdf":
		return resume.MimePDF
	case ".docx":
		return resume.MimeDOCX
	}
	return m
}

// ValidateUpload applies the presence, type and size checks in that order.
func ValidateUpload(in UploadInput) error {
	if in.FileName == "" && in.Size == 0 && len(in.Data) == 0 {
		return ErrNoFileUploaded
	}
	if !resume.IsSupportedMime(in.MimeType) {
		return ErrInvalidFileType
	}
	if in.Size > resume.MaxUploadBytes || int64(len(in.Data)) > resume.MaxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}

func (u *Resume) Upload(ctx context.Context, in UploadInput) (resume.Resume, error) {
	if in.UserID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if err := ValidateUpload(in); err != nil {
		return resume.Resume{}, err
	}

	exists, err := u.users.ExistsByID(ctx, in.UserID)
	if err != nil {
		return resume.Resume{}, ErrInternal
	}
	if !exists {
		return resume.Resume{}, ErrUserNotFound
	}

	log := u.logger.With(zap.String(logger.FieldUserID, in.UserID.String()))

	key := storage.ObjectKey(in.UserID.String(), in.FileName, u.now())
	if err := u.storage.Put(ctx, key, in.Data, in.MimeType); err != nil {
		log.Error("[Resume] upload failed", zap.Error(err))
		return resume.Resume{}, ErrUploadFailed
	}

	parsed := u.parser.Parse(ctx, in.Data, in.MimeType)
	if parsed.Failed() {
		u.removeObject(ctx, log, key)
		return resume.Resume{}, &ParseError{Reason: parsed.Err}
	}

	emb := u.embed(ctx, log, resume.EmbeddingInput(parsed.Profile, parsed.RawText))

	created, err := u.resumes.CreateActive(ctx, resume.Resume{
		UserID:      in.UserID,
		FileName:    in.FileName,
		FilePath:    key,
		FileSize:    in.Size,
		MimeType:    in.MimeType,
		RawText:     parsed.RawText,
		Profile:     parsed.Profile,
		ParseSource: parsed.Source,
		Embedding:   emb,
	})
	if err != nil {
		log.Error("[Resume] save failed", zap.Error(err))
		u.removeObject(ctx, log, key)
		return resume.Resume{}, &SaveError{Detail: schemaDetail(err), Cause: err}
	}

	if len(parsed.Profile.Skills) > 0 {
		if err := u.userSkills.Replace(ctx, in.UserID, repository.SkillSourceResume, parsed.Profile.Skills); err != nil {
			log.Warn("[Resume] saving user skills failed", zap.Error(err))
		}
	}
	if u.cache != nil {
		if err := u.cache.InvalidateUser(ctx, in.UserID.String()); err != nil {
			log.Warn("[Resume] cache invalidation failed", zap.Error(err))
		}
	}

	log.Info("[Resume] uploaded",
		zap.String(logger.FieldResumeID, created.ID.String()),
		zap.String("source", string(parsed.Source)),
		zap.Int("skills", len(parsed.Profile.Skills)),
		zap.Bool("embedded", emb != nil),
	)
	return created, nil
}

func (u *Resume) ListActive(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.resumes.ListActiveByUser(ctx, userID)
	if err != nil {
		u.logger.Error("[Resume] list failed", zap.Error(err))
		return nil, ErrFetchResumes
	}
	return out, nil
}

// embed returns nil when the embedder is unavailable or misbehaves; the
// résumé is then stored without a vector.
func (u *Resume) embed(ctx context.Context, log *zap.Logger, text string) []float32 {
	if u.embedder == nil || text == "" {
		return nil
	}
	emb, err := u.embedder.Embed(ctx, text)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			log.Warn("[Resume] embedding failed", zap.Error(err))
		}
		return nil
	}
	if !domain.ValidEmbedding(emb) {
		log.Warn("[Resume] embedding has wrong dimensions", zap.Int("len", len(emb)))
		return nil
	}
	return emb
}

func (u *Resume) removeObject(ctx context.Context, log *zap.Logger, key string) {
	if err := u.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn("[Resume] compensating delete failed", zap.String("key", key), zap.Error(err))
	}
}

func schemaDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return "database table missing: " + pgErr.Message
	}
	return ""
}

var _ ResumeUsecase = (*Resume)(nil)
