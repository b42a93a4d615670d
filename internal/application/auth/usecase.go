package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación de operadores del almacén: registro y login.
type UseCase struct {
	operatorRepo repository.OperatorRepository
	jwtCfg       JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(operatorRepo repository.OperatorRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{operatorRepo: operatorRepo, jwtCfg: jwtCfg}
}

// Register crea un operador: hashea el password con bcrypt y persiste.
// ErrDuplicate si el username ya existe.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.OperatorResponse, error) {
	username := entity.NormalizeField(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	existing, err := uc.operatorRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	op := &entity.Operator{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.operatorRepo.Create(op); err != nil {
		return nil, err
	}
	return &dto.OperatorResponse{ID: op.ID, Username: op.Username, CreatedAt: op.CreatedAt}, nil
}

// Login verifica username/password y genera el JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := uc.operatorRepo.GetByUsername(entity.NormalizeField(in.Username))
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.ID, op.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Operator: dto.OperatorResponse{ID: op.ID, Username: op.Username, CreatedAt: op.CreatedAt},
	}, nil
}
