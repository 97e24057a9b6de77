package loadTestController

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/risk"
)

const maxIterations = 100000

// LoadTestController benchmarks the assessment pipeline with synthetic
// submissions. Runs go through the real sanitize/score/explain path but skip
// persistence, so timings isolate the model.
type LoadTestController struct {
	assessor     *risk.Assessor
	loadTestRepo repositories.LoadTestRepository
	log          logger.Logger
}

func New(
	assessor *risk.Assessor,
	loadTestRepo repositories.LoadTestRepository,
) *LoadTestController {
	return &LoadTestController{
		assessor:     assessor,
		loadTestRepo: loadTestRepo,
		log:          logger.New("LoadTestController"),
	}
}

func (lc *LoadTestController) CreateAndRunTest(
	ctx context.Context,
	request *CreateLoadTestRequest,
) (*LoadTest, error) {
	log := lc.log.Function("CreateAndRunTest")

	if request.Iterations <= 0 || request.Iterations > maxIterations {
		return nil, log.Error("iterations must be between 1 and 100000",
			"iterations", request.Iterations)
	}

	loadTest := &LoadTest{
		Iterations: request.Iterations,
		Status:     "running",
	}
	if err := lc.loadTestRepo.Create(ctx, loadTest); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	highRisk := 0
	start := time.Now()

	for i := 0; i < request.Iterations; i++ {
		result, _, err := lc.assessor.AssessRisk(syntheticSubmission(rng))
		if err != nil {
			message := fmt.Sprintf("iteration %d failed: %v", i, err)
			loadTest.Status = "failed"
			loadTest.ErrorMessage = &message
			if updateErr := lc.loadTestRepo.Update(ctx, loadTest); updateErr != nil {
				return nil, updateErr
			}
			return loadTest, nil
		}

		if result.Prediction == risk.LabelHighRisk {
			highRisk++
		}
	}

	elapsed := time.Since(start)
	totalMs := int(elapsed.Milliseconds())
	avgUs := int(elapsed.Microseconds() / int64(request.Iterations))

	loadTest.Status = "completed"
	loadTest.TotalTimeMs = &totalMs
	loadTest.AvgLatencyUs = &avgUs
	loadTest.HighRiskCount = &highRisk

	if err := lc.loadTestRepo.Update(ctx, loadTest); err != nil {
		return nil, err
	}

	log.Info("Load test completed",
		"iterations", request.Iterations, "totalMs", totalMs, "highRisk", highRisk)

	return loadTest, nil
}

func (lc *LoadTestController) GetLoadTestByID(ctx context.Context, id string) (*LoadTest, error) {
	return lc.loadTestRepo.GetByID(ctx, id)
}

func (lc *LoadTestController) GetAllLoadTests(ctx context.Context) ([]*LoadTest, error) {
	return lc.loadTestRepo.GetAll(ctx)
}

// syntheticSubmission generates a payload within plausible clinical ranges.
func syntheticSubmission(rng *rand.Rand) map[string]any {
	yesNo := func() string {
		if rng.Float64() < 0.3 {
			return "Yes"
		}
		return "No"
	}

	return map[string]any{
		"Age":                    18 + rng.Intn(30),
		"Systolic_BP":            90 + rng.Float64()*80,
		"Diastolic_BP":           60 + rng.Float64()*50,
		"Blood_Sugar":            4 + rng.Float64()*10,
		"Body_Temp":              36 + rng.Float64()*3,
		"Heart_Rate":             60 + rng.Float64()*60,
		"Previous_Complications": yesNo(),
		"Pre_existing_Diabetes":  yesNo(),
		"Gestational_Diabetes":   yesNo(),
	}
}
