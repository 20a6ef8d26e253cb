package service

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/repository"
)

const (
	daysPerMonth = 30
	daysPerYear  = 365
)

type CalcOutcome string

const (
	CalcOutcomeAdvanced  CalcOutcome = "advanced"
	CalcOutcomeInvalid   CalcOutcome = "invalid-input"
	CalcOutcomeCompleted CalcOutcome = "completed"
	CalcOutcomeReset     CalcOutcome = "reset"
)

type CalcResult struct {
	Outcome CalcOutcome
	Step    model.CalcStep // step the input was collected for
	Text    string
	Summary *model.CalcSummary
}

// CalculatorFlow drives the three-step savings dialogue:
// price -> discount -> daily usage -> summary.
type CalculatorFlow struct {
	repo repository.CalcSessionRepository
}

func NewCalculatorFlow(repo repository.CalcSessionRepository) *CalculatorFlow {
	return &CalculatorFlow{repo: repo}
}

func (f *CalculatorFlow) Active(userID string) bool {
	_, ok := f.repo.Find(userID)
	return ok
}

// Start replaces any previous session with a fresh one at the price step.
func (f *CalculatorFlow) Start(userID string) string {
	f.repo.Save(userID, model.CalcSession{Step: model.CalcStepPrice})
	return calcPricePrompt
}

func (f *CalculatorFlow) Handle(userID, text string) CalcResult {
	session, ok := f.repo.Find(userID)
	if !ok {
		return CalcResult{Outcome: CalcOutcomeReset, Text: calcRecovery}
	}

	value, err := ParseAmount(text)
	if err != nil {
		return CalcResult{Outcome: CalcOutcomeInvalid, Step: session.Step, Text: calcInvalidNumber}
	}

	switch session.Step {
	case model.CalcStepPrice:
		f.repo.Save(userID, model.CalcSession{Step: model.CalcStepDiscount, Price: &value})
		return CalcResult{Outcome: CalcOutcomeAdvanced, Step: model.CalcStepPrice, Text: calcDiscountAsk}

	case model.CalcStepDiscount:
		if session.Price == nil {
			break
		}
		f.repo.Save(userID, model.CalcSession{Step: model.CalcStepUsage, Price: session.Price, Discount: &value})
		return CalcResult{Outcome: CalcOutcomeAdvanced, Step: model.CalcStepDiscount, Text: calcUsageAsk}

	case model.CalcStepUsage:
		if session.Price == nil || session.Discount == nil {
			break
		}
		summary := Summarize(*session.Price, *session.Discount, value)
		f.repo.Delete(userID)
		return CalcResult{
			Outcome: CalcOutcomeCompleted,
			Step:    model.CalcStepUsage,
			Text:    FormatSummary(summary),
			Summary: &summary,
		}
	}

	f.repo.Delete(userID)
	return CalcResult{Outcome: CalcOutcomeReset, Step: session.Step, Text: calcRecovery}
}

func Summarize(price, discount, dailyUsage float64) model.CalcSummary {
	daily := discount * dailyUsage
	return model.CalcSummary{
		Price:         price,
		Discount:      discount,
		DailyUsage:    dailyUsage,
		DailySaving:   daily,
		MonthlySaving: daily * daysPerMonth,
		YearlySaving:  daily * daysPerYear,
	}
}

// ParseAmount accepts a non-negative decimal, ignoring commas and spaces.
func ParseAmount(text string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, text)
	if cleaned == "" {
		return 0, apperrors.InvalidAmount(text)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, apperrors.InvalidAmount(text)
	}
	return v, nil
}

func FormatSummary(s model.CalcSummary) string {
	return strings.Join([]string{
		"✅ ผลการคำนวณความประหยัดของคุณ",
		"",
		"ราคาน้ำมันปกติ: " + plain(s.Price) + " บาท/ลิตร",
		"ส่วนลดจาก Fuel Innovation: " + plain(s.Discount) + " บาท/ลิตร",
		"ปริมาณการใช้น้ำมัน: " + plain(s.DailyUsage) + " ลิตร/วัน",
		"",
		"💰 ประหยัดได้ประมาณ:",
		"→ " + grouped(s.DailySaving) + " บาท/วัน",
		"→ " + grouped(s.MonthlySaving) + " บาท/เดือน",
		"→ " + grouped(s.YearlySaving) + " บาท/ปี",
		"",
		"💡 ส่วนลดจริงขึ้นอยู่กับพื้นที่และปริมาณการใช้งาน ราคานี้ยังไม่รวมค่าขนส่งครับ",
		"หากต้องการทราบราคาที่แน่นอนสำหรับพื้นที่ของคุณ",
		"พิมพ์ “ติดต่อฝ่ายขาย” ได้เลยครับ 📞",
	}, "\n")
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// grouped prints v with thousands separators and at most 3 decimals.
func grouped(v float64) string {
	return message.NewPrinter(language.English).Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
