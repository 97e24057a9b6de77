package authController

import (
	"context"

	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

type AuthController struct {
	userRepo           repositories.UserRepository
	patientRepo        repositories.PatientRepository
	tokenService       *services.TokenService
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	patientRepo repositories.PatientRepository,
	tokenService *services.TokenService,
	transactionService *services.TransactionService,
	config config.Config,
) *AuthController {
	return &AuthController{
		userRepo:           userRepo,
		patientRepo:        patientRepo,
		tokenService:       tokenService,
		transactionService: transactionService,
		log:                logger.New("AuthController"),
	}
}

func (ac *AuthController) SignupProvider(
	ctx context.Context,
	request *SignupProviderRequest,
) (*User, error) {
	log := ac.log.Function("SignupProvider")

	if request.FullName == "" || request.Email == "" || request.Password == "" {
		return nil, log.Error("name, email and password are required")
	}
	if !ValidHospital(request.HospitalName) {
		return nil, log.Error("unknown hospital", "hospital", request.HospitalName)
	}
	if !ValidProviderRole(request.Role) {
		return nil, log.Error("unknown provider role", "role", request.Role)
	}

	exists, err := ac.userRepo.EmailExists(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, log.Error("email already registered", "email", request.Email)
	}

	hashedPassword, err := services.HashPassword(request.Password)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	role := request.Role
	user := &User{
		FullName:       request.FullName,
		Email:          request.Email,
		HashedPassword: hashedPassword,
		IsProvider:     true,
		Role:           &role,
		HospitalName:   request.HospitalName,
	}

	if err := ac.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignupPatient creates the user account and its patient profile together,
// auto-assigning a provider from the same hospital when one exists.
func (ac *AuthController) SignupPatient(
	ctx context.Context,
	request *SignupPatientRequest,
) (*User, *Patient, error) {
	log := ac.log.Function("SignupPatient")

	if request.FullName == "" || request.Email == "" || request.Password == "" {
		return nil, nil, log.Error("name, email and password are required")
	}
	if !ValidHospital(request.HospitalName) {
		return nil, nil, log.Error("unknown hospital", "hospital", request.HospitalName)
	}

	exists, err := ac.userRepo.EmailExists(ctx, request.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, log.Error("email already registered", "email", request.Email)
	}

	hashedPassword, err := services.HashPassword(request.Password)
	if err != nil {
		return nil, nil, log.Err("failed to hash password", err)
	}

	user := &User{
		FullName:       request.FullName,
		Email:          request.Email,
		HashedPassword: hashedPassword,
		IsProvider:     false,
		HospitalName:   request.HospitalName,
	}

	var patient *Patient
	err = ac.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := ac.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		provider, err := ac.userRepo.GetRandomProviderByHospital(txCtx, request.HospitalName)
		if err != nil {
			return err
		}

		patient = &Patient{
			FullName:     user.FullName,
			UserID:       user.ID,
			HospitalName: request.HospitalName,
			RiskLevel:    RiskLevelUnknown,
		}
		if provider != nil {
			patient.ProviderID = &provider.ID
		}

		return ac.patientRepo.Create(txCtx, patient)
	})
	if err != nil {
		return nil, nil, err
	}

	return user, patient, nil
}

func (ac *AuthController) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := ac.log.Function("Login")

	if request.Email == "" || request.Password == "" {
		return nil, log.Error("email and password are required")
	}

	user, err := ac.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, log.Error("invalid email or password")
	}

	if !services.CheckPassword(user.HashedPassword, request.Password) {
		return nil, log.Error("invalid email or password", "email", request.Email)
	}

	token, err := ac.tokenService.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  token,
		TokenType:    "bearer",
		IsProvider:   user.IsProvider,
		Role:         user.Role,
		HospitalName: user.HospitalName,
		FullName:     user.FullName,
		Email:        user.Email,
	}, nil
}
