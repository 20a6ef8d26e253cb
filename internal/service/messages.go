package service

import (
	"fmt"
	"strings"
)

const (
	brandName       = "Fuel Innovation"
	placeholderName = "ลูกค้าท่าน"

	// Menu commands the user can type; also used on card buttons.
	CommandAbout      = "เกี่ยวกับเรา"
	CommandCalculate  = "คำนวณความประหยัด"
	CommandSpec       = "สเปคน้ำมัน"
	CommandQuote      = "ใบเสนอราคา"
	CommandHelp       = "ถาม–ตอบ"
	CommandSales      = "ฝ่ายขาย"
	CommandSalesFull  = "ติดต่อฝ่ายขาย"
	greetingPrefix    = "สวัสดี"
	calcPricePrompt   = "🧮 กรุณาพิมพ์ราคาน้ำมันที่คุณซื้อจากหน้าปั๊ม (บาท/ลิตร):"
	calcDiscountAsk   = "📉 ส่วนลดที่ได้รับจาก Fuel Innovation (บาท/ลิตร):"
	calcUsageAsk      = "⛽ ปริมาณการใช้น้ำมันต่อวัน (ลิตร):"
	calcInvalidNumber = "❗ กรุณาพิมพ์เป็นตัวเลขที่ถูกต้อง เช่น 33 หรือ 33.50"
	calcRecovery      = "ขออภัยครับ เกิดข้อผิดพลาดในการคำนวณ กรุณาพิมพ์ “คำนวณความประหยัด” เพื่อเริ่มใหม่อีกครั้งครับ 🙏"
)

func shortGreetingText(name string) string {
	return fmt.Sprintf("😊 ยินดีที่ได้คุยกับคุณ%s อีกครั้งครับ", name)
}

func fullGreetingText(name string) string {
	return strings.Join([]string{
		fmt.Sprintf("👋 สวัสดีครับคุณ%s ขอบคุณที่ติดต่อ %s 🔥", name, brandName),
		"ทีมงานพร้อมดูแลทุกคำถามของคุณครับ 😊",
		"",
		fmt.Sprintf("พิมพ์ \"%s\" เพื่อดูข้อมูลบริษัท", CommandAbout),
		fmt.Sprintf("พิมพ์ \"%s\" เพื่อดูผลคำนวณจริง", CommandCalculate),
		fmt.Sprintf("พิมพ์ \"%s\" เพื่อดูรายละเอียดผลิตภัณฑ์", CommandSpec),
		fmt.Sprintf("พิมพ์ \"%s\" เพื่อขอใบเสนอราคา", CommandQuote),
		fmt.Sprintf("พิมพ์ \"%s\" เพื่อสอบถามข้อมูลเพิ่มเติม", CommandHelp),
	}, "\n")
}

var exampleQuestions = []string{
	"ทำไมน้ำมันของเราถึงราคาถูก",
	"น้ำมันมาจากไหน",
	"น้ำมันของคุณทำมาจากอะไร",
	"น้ำมันนี้ขายในปั๊มได้ไหม",
	"ใช้กับเครื่องปั่นไฟได้ไหม",
	"ต่างกับดีเซลปั๊มยังไง",
	"มีขั้นต่ำไหมครับ",
	"ค่าซัลเฟอร์มีผลอย่างไร",
	"ระบบ DPF/SCR คืออะไร",
	"มีเอกสารรับรองไหม",
	"มีระบบ QC ภายในไหม",
	"น้ำมันเก็บได้นานเท่าไร",
}

func helpText() string {
	var b strings.Builder
	b.WriteString("💬 คุณสามารถพิมพ์คำถามของคุณได้เลยครับ เช่น\n\n")
	for _, q := range exampleQuestions {
		b.WriteString("• ")
		b.WriteString(q)
		b.WriteString("\n")
	}
	b.WriteString("\n🧠 บอทจะตอบโดยอัตโนมัติตามคู่มือฝ่ายขาย Fuel Innovation เพื่อให้ข้อมูลที่ถูกต้องและรวดเร็วครับ ✅")
	return b.String()
}

func aboutText(companyProfileURL string) string {
	if companyProfileURL == "" {
		return "ขออภัยครับ ขณะนี้ยังไม่ได้ตั้งค่าลิงก์ Company Profile ในระบบ 🙏"
	}
	return strings.Join([]string{
		"🏢 Fuel Innovation – Company Profile",
		"",
		"คุณสามารถดาวน์โหลดเอกสารแนะนำบริษัทได้ที่ลิงก์ด้านล่างครับ 👇",
		"📎 " + companyProfileURL,
	}, "\n")
}

const salesText = "ฝ่ายขาย Fuel Innovation พร้อมให้คำแนะนำทุกวันครับ\u200B\n📞 คุณนิค 098-227-7887\u200B\n📞 คุณต้อม 065-919-9464"

func specText(specURL string) string {
	return "📘 Fuel Innovation – Product Specification Sheet\n" +
		"ดาวน์โหลดสเปคน้ำมันอุตสาหกรรม (Type D1) ได้ที่นี่ 👇\n" +
		"📎 " + specURL + "\n\n" +
		"ทีม Fuel Innovation พร้อมดูแลคุณทุกวันครับ 😊"
}

func quoteText(quoteURL string) string {
	return "🧾 Fuel Innovation – ใบเสนอราคาอย่างเป็นทางการ\n" +
		"กรุณากรอกข้อมูลเพื่อขอใบเสนอราคาที่ลิงก์ด้านล่าง 👇\n\n" +
		"📎 " + quoteURL + "\n\n" +
		"ทีม Fuel Innovation พร้อมให้บริการครับ 🚛"
}

const fallbackText = "🤔 ขอบคุณครับที่สอบถามเข้ามา\n" +
	"บอทอาจยังไม่เข้าใจคำถามนี้ชัดเจน\n\n" +
	"หากต้องการให้ทีมงานติดต่อกลับ กรุณาพิมพ์\n" +
	"📞 'ติดต่อฝ่ายขาย' หรือส่งชื่อและเบอร์โทรกลับมาได้เลยครับ\n\n" +
	"หรือพิมพ์ \"ถาม–ตอบ\" เพื่อดูหัวข้อคำถามยอดนิยมครับ 💬"

func salesLeadNotice(userID, msg string) string {
	return fmt.Sprintf("🔔 ลูกค้าขอติดต่อฝ่ายขาย\nuser: %s\nข้อความ: %s", userID, msg)
}

func calcLeadNotice(userID, summary string) string {
	return fmt.Sprintf("🔔 ลูกค้าคำนวณความประหยัดเสร็จแล้ว\nuser: %s\n\n%s", userID, summary)
}
