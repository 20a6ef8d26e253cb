package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/util"
)

const adminNotifyTimeout = 10 * time.Second

var (
	aboutPattern = regexp.MustCompile(`(?i)เกี่ยวกับเรา|about`)
	specPattern  = regexp.MustCompile(`(?i)spec|สเปค`)
	quotePattern = regexp.MustCompile(`(?i)ใบเสนอราคา|quotation`)

	helpPhrases  = []string{"ถาม", "ถาม-ตอบ", "ถาม–ตอบ"}
	salesPhrases = []string{"ฝ่ายขาย", "ติดต่อ", "ขาย", "โทร", "อยากซื้อ", "ติดต่อฝ่ายขาย"}
)

type textInput struct {
	userID string
	msg    string
}

// intentRule pairs a predicate with the handler that answers when it holds.
// Rules are evaluated in slice order; the first match wins.
type intentRule struct {
	name   string
	match  func(in textInput) bool
	handle func(ctx context.Context, in textInput) *model.Reply
}

type RouterConfig struct {
	FAQ       *FAQMatcher
	Greetings *GreetingMemory
	Calc      *CalculatorFlow
	Recorder  *InteractionRecorder
	Notifier  AdminNotifier // optional
	Links     Links
}

// Router turns one inbound event into at most one reply.
type Router struct {
	faq       *FAQMatcher
	greetings *GreetingMemory
	calc      *CalculatorFlow
	recorder  *InteractionRecorder
	notifier  AdminNotifier
	links     Links
	welcome   *model.Reply
	locks     *util.KeyedMutex
	rules     []intentRule
	wg        sync.WaitGroup
}

func NewRouter(cfg RouterConfig) (*Router, error) {
	welcome, err := BuildWelcomeCard(cfg.Links)
	if err != nil {
		return nil, fmt.Errorf("build welcome card: %w", err)
	}

	r := &Router{
		faq:       cfg.FAQ,
		greetings: cfg.Greetings,
		calc:      cfg.Calc,
		recorder:  cfg.Recorder,
		notifier:  cfg.Notifier,
		links:     cfg.Links,
		welcome:   welcome,
		locks:     util.NewKeyedMutex(),
	}

	r.rules = []intentRule{
		{name: "calc-session", match: r.inCalcSession, handle: r.handleCalcStep},
		{name: "faq", match: r.matchesFAQ, handle: r.handleFAQ},
		{name: "greeting", match: isGreeting, handle: r.handleGreeting},
		{name: "calc-start", match: isCalcStart, handle: r.handleCalcStart},
		{name: "help", match: isHelp, handle: r.handleHelp},
		{name: "about", match: matchPattern(aboutPattern), handle: r.handleAbout},
		{name: "sales", match: isSales, handle: r.handleSales},
		{name: "spec", match: matchPattern(specPattern), handle: r.handleSpec},
		{name: "quote", match: matchPattern(quotePattern), handle: r.handleQuote},
	}

	return r, nil
}

// Route processes one event. Events of the same user are serialised so the
// session and greeting read-modify-write steps never interleave.
func (r *Router) Route(ctx context.Context, event model.Event) (*model.Reply, error) {
	userID := event.GetUserID()
	if userID == "" {
		userID = model.UnknownUserID
	}

	unlock := r.locks.Lock(userID)
	defer unlock()

	switch ev := event.(type) {
	case model.FollowEvent:
		r.recorder.Record(model.ActionFollow, map[string]any{"userId": userID})
		return r.welcome, nil

	case model.TextMessageEvent:
		return r.routeText(ctx, textInput{userID: userID, msg: strings.TrimSpace(ev.Text)}), nil

	case model.OtherMessageEvent:
		r.recorder.Record(model.ActionIgnoredMessage, map[string]any{
			"userId":      userID,
			"contentType": ev.ContentType,
		})
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported event type %T", event)
	}
}

func (r *Router) routeText(ctx context.Context, in textInput) *model.Reply {
	for _, rule := range r.rules {
		if rule.match(in) {
			log.Debug().
				Str("userId", util.MaskUserID(in.userID)).
				Str("intent", rule.name).
				Msg("intent matched")
			return rule.handle(ctx, in)
		}
	}
	return r.handleFallback(in)
}

// Wait blocks until background admin notices and interaction writes finish.
func (r *Router) Wait() {
	r.wg.Wait()
	r.recorder.Wait()
}

// Predicates

func (r *Router) inCalcSession(in textInput) bool {
	return r.calc.Active(in.userID)
}

func (r *Router) matchesFAQ(in textInput) bool {
	_, ok := r.faq.Match(in.msg)
	return ok
}

func isGreeting(in textInput) bool {
	return strings.HasPrefix(in.msg, greetingPrefix)
}

func isCalcStart(in textInput) bool {
	return strings.Contains(in.msg, CommandCalculate)
}

func isHelp(in textInput) bool {
	return oneOf(in.msg, helpPhrases)
}

func isSales(in textInput) bool {
	return oneOf(in.msg, salesPhrases)
}

func matchPattern(re *regexp.Regexp) func(textInput) bool {
	return func(in textInput) bool {
		return re.MatchString(in.msg)
	}
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Handlers

func (r *Router) handleCalcStep(_ context.Context, in textInput) *model.Reply {
	result := r.calc.Handle(in.userID, in.msg)
	r.recorder.Record(model.ActionCalcStep, map[string]any{
		"userId":  in.userID,
		"step":    int(result.Step),
		"outcome": string(result.Outcome),
	})

	if result.Outcome == CalcOutcomeCompleted {
		r.notifyAdmin(calcLeadNotice(in.userID, result.Text))
	}
	return model.NewTextReply(result.Text)
}

func (r *Router) handleFAQ(_ context.Context, in textInput) *model.Reply {
	answer, _ := r.faq.Match(in.msg)
	r.recorder.Record(model.ActionFAQAutoReply, map[string]any{"msg": in.msg, "matched": true})
	return model.NewTextReply(answer)
}

func (r *Router) handleGreeting(ctx context.Context, in textInput) *model.Reply {
	name := r.greetings.ResolveName(ctx, in.userID)
	r.recorder.Record(model.ActionSmartGreeting, map[string]any{"userId": in.userID, "name": name})

	if !r.greetings.CanGreetFully(in.userID) {
		return model.NewTextReply(shortGreetingText(name))
	}
	return model.NewTextReply(fullGreetingText(name))
}

func (r *Router) handleCalcStart(_ context.Context, in textInput) *model.Reply {
	r.recorder.Record(model.ActionCalcStart, map[string]any{"userId": in.userID})
	return model.NewTextReply(r.calc.Start(in.userID))
}

func (r *Router) handleHelp(_ context.Context, in textInput) *model.Reply {
	r.recorder.Record(model.ActionFAQPrompt, map[string]any{"msg": in.msg})
	return model.NewTextReply(helpText())
}

func (r *Router) handleAbout(_ context.Context, in textInput) *model.Reply {
	r.recorder.Record(model.ActionAboutLink, map[string]any{
		"msg":        in.msg,
		"configured": r.links.CompanyProfileURL != "",
	})
	return model.NewTextReply(aboutText(r.links.CompanyProfileURL))
}

func (r *Router) handleSales(_ context.Context, in textInput) *model.Reply {
	r.recorder.Record(model.ActionSalesText, map[string]any{"msg": in.msg})
	r.notifyAdmin(salesLeadNotice(in.userID, in.msg))
	return model.NewTextReply(salesText)
}

func (r *Router) handleSpec(_ context.Context, in textInput) *model.Reply {
	r.recorder.Record(model.ActionSpecText, map[string]any{"msg": in.msg})
	return model.NewTextReply(specText(r.links.SpecURL))
}

func (r *Router) handleQuote(_ context.Context, in textInput) *model.Reply {
	r.recorder.Record(model.ActionQuoteText, map[string]any{"msg": in.msg})
	return model.NewTextReply(quoteText(r.links.QuoteURL))
}

func (r *Router) handleFallback(in textInput) *model.Reply {
	r.recorder.Record(model.ActionGenericText, map[string]any{"msg": in.msg})
	return model.NewTextReply(fallbackText)
}

func (r *Router) notifyAdmin(text string) {
	if r.notifier == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), adminNotifyTimeout)
		defer cancel()

		if err := r.notifier.Notify(ctx, text); err != nil {
			log.Warn().Err(err).Msg("failed to notify admin")
		}
	}()
}
