package execution

import (
	"time"

	"github.com/fhunleth/zigler/internal/domain"
)

// Executor executes registered test cases and returns results
type Executor interface {
	Execute(cases []domain.RegisteredCase) ([]domain.TestResult, time.Duration, error)
}
