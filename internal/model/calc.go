package model

type CalcStep int

const (
	CalcStepPrice    CalcStep = 1
	CalcStepDiscount CalcStep = 2
	CalcStepUsage    CalcStep = 3
)

// CalcSession exists for a user only while the savings calculation is in
// progress.
type CalcSession struct {
	Step     CalcStep
	Price    *float64
	Discount *float64
}

type CalcSummary struct {
	Price         float64
	Discount      float64
	DailyUsage    float64
	DailySaving   float64
	MonthlySaving float64
	YearlySaving  float64
}
