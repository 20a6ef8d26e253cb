package service

import (
	"encoding/json"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

const (
	welcomeAltText = "Fuel Innovation – Welcome"
	logoURL        = "https://raw.githubusercontent.com/khunhoro-Luesak/fuel-innovation-assets/main/logo-orange-gradient.png"
)

// Links are the optional external documents referenced in replies.
type Links struct {
	SpecURL           string
	QuoteURL          string
	CompanyProfileURL string
}

// BuildWelcomeCard renders the follow-event menu. A button whose link is not
// configured sends its text command instead, so the card stays deliverable.
func BuildWelcomeCard(links Links) (*model.Reply, error) {
	aboutURL := links.CompanyProfileURL
	if aboutURL == "" {
		aboutURL = links.SpecURL
	}

	buttons := []any{
		linkOrCommandButton("🏢 เกี่ยวกับเรา", "#38BDF8", aboutURL, CommandAbout),
		linkOrCommandButton("📄 ดูสเปคน้ำมัน", "#FBBF24", links.SpecURL, CommandSpec),
		linkOrCommandButton("🧾 ขอใบเสนอราคา", "#EF4444", links.QuoteURL, CommandQuote),
		commandButton("🧮 คำนวณความประหยัด", "#8B5CF6", CommandCalculate),
		commandButton("💬 ถาม–ตอบ", "#2563EB", CommandHelp),
		commandButton("📞 ฝ่ายขาย", "#22C55E", CommandSales),
	}

	bubble := map[string]any{
		"type": "bubble",
		"size": "giga",
		"body": map[string]any{
			"type":            "box",
			"layout":          "vertical",
			"backgroundColor": "#0F2957",
			"borderColor":     "#123E91",
			"borderWidth":     "1px",
			"cornerRadius":    "lg",
			"paddingAll":      "12px",
			"contents": []any{
				map[string]any{
					"type":       "box",
					"layout":     "vertical",
					"alignItems": "center",
					"paddingAll": "6px",
					"contents": []any{
						map[string]any{"type": "image", "url": logoURL, "size": "md", "aspectMode": "fit", "margin": "none"},
					},
				},
				text("Fuel Innovation Co., Ltd.", "xl", "#FFFFFF", map[string]any{"weight": "bold", "margin": "md"}),
				map[string]any{"type": "separator", "color": "#2155B5", "margin": "md"},
				text("ผู้จัดจำหน่ายเชื้อเพลิงอุตสาหกรรมทางเลือก (Alternative Industrial Fuel – Type D1)\nประหยัดสูงสุด 4 บาท/ลิตร สำหรับรถบรรทุกและเครื่องจักรกลหนัก 🚛",
					"sm", "#FFFFFF", map[string]any{"wrap": true, "margin": "md"}),
				map[string]any{
					"type":            "box",
					"layout":          "vertical",
					"backgroundColor": "#123E91",
					"borderColor":     "#1E40AF",
					"borderWidth":     "1px",
					"cornerRadius":    "md",
					"paddingAll":      "12px",
					"margin":          "lg",
					"contents": []any{
						text("✅ เหมาะสำหรับ", "sm", "#FACC15", map[string]any{"weight": "bold"}),
						text("• รถสิบล้อ / รถเทรลเลอร์ / รถขุด / รถแม็คโคร", "sm", "#FFFFFF", map[string]any{"wrap": true, "margin": "xs"}),
						text("• เครื่องจักรงานก่อสร้างและอุตสาหกรรม", "sm", "#FFFFFF", map[string]any{"wrap": true, "margin": "xs"}),
					},
				},
				text("🧭 เลือกเมนูด้านล่างเพื่อเริ่มต้นใช้งาน", "xs", "#FBBF24", map[string]any{"weight": "bold", "margin": "md"}),
				map[string]any{
					"type":     "box",
					"layout":   "vertical",
					"spacing":  "sm",
					"margin":   "md",
					"contents": buttons,
				},
				map[string]any{
					"type":            "box",
					"layout":          "vertical",
					"backgroundColor": "#0B2347",
					"cornerRadius":    "md",
					"paddingAll":      "10px",
					"margin":          "lg",
					"contents": []any{
						text("ทีม Fuel Innovation พร้อมดูแลทุกวันครับ 😊", "xs", "#FFFFFF", map[string]any{"wrap": true}),
					},
				},
			},
		},
	}

	contents, err := json.Marshal(bubble)
	if err != nil {
		return nil, err
	}
	return model.NewCardReply(welcomeAltText, contents), nil
}

func text(s, size, color string, extra map[string]any) map[string]any {
	t := map[string]any{
		"type":  "text",
		"text":  s,
		"size":  size,
		"color": color,
		"align": "center",
	}
	for k, v := range extra {
		t[k] = v
	}
	return t
}

func linkOrCommandButton(label, color, uri, command string) map[string]any {
	if uri == "" {
		return commandButton(label, color, command)
	}
	return button(color, map[string]any{"type": "uri", "label": label, "uri": uri})
}

func commandButton(label, color, command string) map[string]any {
	return button(color, map[string]any{"type": "message", "label": label, "text": command})
}

func button(color string, action map[string]any) map[string]any {
	return map[string]any{
		"type":   "button",
		"style":  "primary",
		"color":  color,
		"height": "sm",
		"action": action,
	}
}
