package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/ml"
	"server/internal/repositories"
	"server/internal/risk"
	"server/internal/services"
	"server/internal/websockets"

	appointmentController "server/internal/controllers/appointments"
	assessmentController "server/internal/controllers/assessment"
	authController "server/internal/controllers/auth"
	loadTestController "server/internal/controllers/loadtest"
	patientController "server/internal/controllers/patients"
	providerController "server/internal/controllers/providers"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config
	Assessor   *risk.Assessor

	// Services
	TransactionService *services.TransactionService
	TokenService       *services.TokenService

	// Repositories
	UserRepo        repositories.UserRepository
	PatientRepo     repositories.PatientRepository
	AppointmentRepo repositories.AppointmentRepository
	RiskHistoryRepo repositories.RiskHistoryRepository
	LoadTestRepo    repositories.LoadTestRepository

	// Controllers
	AuthController        *authController.AuthController
	PatientController     *patientController.PatientController
	ProviderController    *providerController.ProviderController
	AppointmentController *appointmentController.AppointmentController
	AssessmentController  *assessmentController.AssessmentController
	LoadTestController    *loadTestController.LoadTestController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// A missing classifier is fatal; a missing explainer degrades to empty
	// contributing factors.
	classifier, explainer, err := ml.Load(config, logger.New("app"))
	if err != nil {
		return &App{}, log.Err("failed to load risk model", err)
	}
	assessor := risk.NewAssessor(classifier, explainer)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	tokenService := services.NewTokenService(config)

	// Initialize repositories
	userRepo := repositories.NewUser(db)
	patientRepo := repositories.NewPatient(db)
	appointmentRepo := repositories.NewAppointment(db)
	riskHistoryRepo := repositories.NewRiskHistory(db)
	loadTestRepo := repositories.NewLoadTest(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, config, userRepo, tokenService)
	authCtrl := authController.New(userRepo, patientRepo, tokenService, transactionService, config)
	patientCtrl := patientController.New(db, patientRepo, userRepo, riskHistoryRepo, appointmentRepo)
	providerCtrl := providerController.New(userRepo, patientRepo, appointmentRepo, riskHistoryRepo)
	appointmentCtrl := appointmentController.New(db, appointmentRepo, patientRepo, userRepo)
	assessmentCtrl := assessmentController.New(
		db, assessor, patientRepo, riskHistoryRepo, transactionService, eventBus)
	loadTestCtrl := loadTestController.New(assessor, loadTestRepo)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		Websocket:             websocket,
		EventBus:              eventBus,
		Assessor:              assessor,
		TransactionService:    transactionService,
		TokenService:          tokenService,
		UserRepo:              userRepo,
		PatientRepo:           patientRepo,
		AppointmentRepo:       appointmentRepo,
		RiskHistoryRepo:       riskHistoryRepo,
		LoadTestRepo:          loadTestRepo,
		AuthController:        authCtrl,
		PatientController:     patientCtrl,
		ProviderController:    providerCtrl,
		AppointmentController: appointmentCtrl,
		AssessmentController:  assessmentCtrl,
		LoadTestController:    loadTestCtrl,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Assessor,
		a.TransactionService,
		a.TokenService,
		a.UserRepo,
		a.PatientRepo,
		a.AppointmentRepo,
		a.RiskHistoryRepo,
		a.LoadTestRepo,
		a.AuthController,
		a.PatientController,
		a.ProviderController,
		a.AppointmentController,
		a.AssessmentController,
		a.LoadTestController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
