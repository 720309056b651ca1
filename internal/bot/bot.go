package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"time"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"habit-tracker/internal/config"
	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageName
	stageCategory
	stageEmoji
	stageColor
	stageSchedule
)

const (
	cbTogglePrefix  = "toggle:"
	cbDeletePrefix  = "delete:"
	cbConfirmPrefix = "confirm:"
	cbCancelPrefix  = "cancel:"
)

const (
	btnSkip         = "⏭️ Пропустить"
	btnDone         = "✅ Готово"
	btnConfirm      = "✅ Подтвердить"
	btnCancel       = "↩️ Отмена"
	btnCancelDialog = "⏪ Отменить ввод"

	menuLabelNewTracker = "➕ Новый трекер"
	menuLabelToday      = "📋 Сегодня"
	menuLabelCategories = "📂 Категории"
	menuLabelHelp       = "ℹ️ Помощь"

	defaultEmoji = "🙂"
	defaultColor = "#33CF69"
)

// trackerInput accumulates the staged answers of a /newtracker dialog.
type trackerInput struct {
	Name     string
	Category string
	Emoji    string
	Color    string
	Schedule model.Schedule
}

type conversationState struct {
	stage conversationStage
	input trackerInput
}

type confirmationRequest struct {
	trackerID uuid.UUID
	name      string
}

// Bot aggregates Telegram API with the tracker services. It is the UI
// collaborator of the provider: it renders the visible set, forwards toggle
// taps and receives change-cycle diffs through the provider listener.
type Bot struct {
	api           *tgbotapi.BotAPI
	provider      *service.TrackerProvider
	completionSvc *service.CompletionService
	categorySvc   *service.CategoryService
	summarySvc    *service.SummaryService
	config        *config.Config
	conversations map[int64]*conversationState
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

func New(token string, provider *service.TrackerProvider, completionSvc *service.CompletionService, categorySvc *service.CategoryService, summarySvc *service.SummaryService, cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	b := &Bot{
		api:           api,
		provider:      provider,
		completionSvc: completionSvc,
		categorySvc:   categorySvc,
		summarySvc:    summarySvc,
		config:        cfg,
		conversations: make(map[int64]*conversationState),
		confirmations: make(map[int64]confirmationRequest),
	}

	provider.SetListener(func(update service.StoreUpdate) {
		log.Printf("[info] store update: inserted=%v deleted=%v", update.InsertedIndexes, update.DeletedIndexes)
	})

	return b, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Диалог создания трекера отменён. Я здесь, чтобы начать заново.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		log.Printf("[info] conversation step %d from %d", b.getConversation(msg.From.ID).stage, msg.From.ID)
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Я пока не понял сообщение. Набери /newtracker, чтобы добавить трекер, или /help для списка команд.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.handleHelp(msg)
	case "today":
		return b.sendTrackerList(ctx, msg.Chat.ID)
	case "date":
		return b.handleDate(ctx, msg)
	case "newtracker":
		return b.startNewTrackerConversation(msg)
	case "categories":
		return b.handleCategories(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "stats":
		return b.handleStats(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Диалог создания трекера отменён.")
	default:
		return b.sendText(msg.Chat.ID, "Команда не поддерживается. Загляни в /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "друг"
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n<b>Я трекер привычек: помогу не забыть о регулярных делах.</b>\n\nКоманды:\n"+
			"• /newtracker — добавить новый трекер\n"+
			"• /today — показать трекеры на выбранную дату\n"+
			"• /date ГГГГ-ММ-ДД — сменить дату\n"+
			"• /categories — список категорий\n"+
			"• /report — дневной отчёт\n"+
			"• /stats — статистика\n"+
			"• /help — подсказки\n"+
			"• /cancel — отменить текущий ввод",
		escape(name),
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Подсказки</b>\n" +
		"• /newtracker — добавить трекер пошагово: название, категория, эмодзи, цвет, расписание\n" +
		"• /today — трекеры на выбранную дату; кнопка отмечает день выполненным или снимает отметку\n" +
		"• /date 2025-11-30 — посмотреть другой день\n" +
		"• /categories — посмотреть доступные категории\n" +
		"• /report — отправить дневной отчёт прямо сейчас\n" +
		"• /stats — сколько трекеров заведено и сколько дней отмечено\n" +
		"• /cancel — отменить текущий ввод\n\n" +
		"Трекер без расписания показывается каждый день. Отметить будущую дату нельзя."
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleDate(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		current := b.provider.CurrentDate()
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Выбранная дата: %s. Смени её так: /date 2025-11-30", current.Format("2006-01-02")))
	}

	parsed, err := time.Parse("2006-01-02", args)
	if err != nil {
		return b.sendText(msg.Chat.ID, "Не могу распознать дату. Используй формат <code>2025-11-30</code>.")
	}

	if err := b.provider.SetCurrentDate(ctx, parsed); err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось сменить дату: %s", escape(err.Error())))
	}

	return b.sendTrackerList(ctx, msg.Chat.ID)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	text, err := b.summarySvc.DailySummary(ctx, b.provider.CurrentDate())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось сформировать отчёт: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleCategories(ctx context.Context, msg *tgbotapi.Message) error {
	categories, err := b.categorySvc.List(ctx)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось получить категории: %s", escape(err.Error())))
	}
	if len(categories) == 0 {
		return b.sendText(msg.Chat.ID, "Категории пока пусты. Добавь их при создании трекера.")
	}
	var builder strings.Builder
	builder.WriteString("📂 <b>Категории</b>\n")
	for _, cat := range categories {
		builder.WriteString(fmt.Sprintf("• %s\n", escape(strings.TrimSpace(cat.Title))))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	stats, err := b.summarySvc.Statistics(ctx)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось собрать статистику: %s", escape(err.Error())))
	}
	text := "📊 <b>Статистика</b>\n" +
		fmt.Sprintf("• Трекеров: %d\n", stats.Trackers) +
		fmt.Sprintf("• Дней отмечено всего: %d\n", stats.CompletedDays) +
		fmt.Sprintf("• Лучший день: %d отмет.", stats.BestDay)
	return b.sendText(msg.Chat.ID, text)
}

// SendDailyReport sends the digest for today to the configured report chat.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	if b.config == nil || b.config.ReportChatID == 0 {
		return nil
	}
	text, err := b.summarySvc.DailySummary(ctx, time.Now())
	if err != nil {
		return err
	}
	return b.sendText(b.config.ReportChatID, text)
}

func (b *Bot) startNewTrackerConversation(msg *tgbotapi.Message) error {
	log.Printf("[info] start new tracker conversation user=%d", msg.From.ID)
	b.setConversation(msg.From.ID, &conversationState{stage: stageName})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 Создаём новый трекер.\n<b>Шаг 1:</b> как его назвать?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Название не может быть пустым. Как назвать трекер?", cancelKeyboard())
		}
		state.input.Name = text
		state.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 Выбери категорию или отправь свою.", b.categoryKeyboard(ctx))
	case stageCategory:
		if isSkipInput(text) || text == "" {
			state.input.Category = model.FallbackCategoryTitle
		} else {
			state.input.Category = text
		}
		state.stage = stageEmoji
		return b.sendWithReplyMarkup(msg.Chat.ID, "😀 Отправь эмодзи для трекера (или нажми «Пропустить»).", skipKeyboard())
	case stageEmoji:
		if !isSkipInput(text) && text != "" {
			state.input.Emoji = text
		}
		state.stage = stageColor
		return b.sendWithReplyMarkup(msg.Chat.ID, "🎨 Выбери цвет карточки.", colorKeyboard())
	case stageColor:
		if !isSkipInput(text) {
			state.input.Color = colorToken(text)
		}
		state.stage = stageSchedule
		return b.sendWithReplyMarkup(msg.Chat.ID, schedulePrompt(state.input.Schedule), scheduleKeyboard())
	case stageSchedule:
		if isDoneInput(text) {
			err := b.finishTrackerCreation(ctx, state.input, msg.Chat.ID)
			b.clearConversation(msg.From.ID)
			return err
		}
		day, ok := weekDayFromShortName(text)
		if !ok {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Нажми на день недели, чтобы добавить или убрать его, затем «Готово».", scheduleKeyboard())
		}
		state.input.Schedule = state.input.Schedule.Toggle(day)
		return b.sendWithReplyMarkup(msg.Chat.ID, schedulePrompt(state.input.Schedule), scheduleKeyboard())
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Диалог сброшен. Попробуй ещё раз через /newtracker.")
	}
}

func schedulePrompt(schedule model.Schedule) string {
	if schedule.IsEmpty() {
		return "📆 Выбери дни недели и нажми «Готово».\nБез выбранных дней трекер будет показываться каждый день."
	}
	return fmt.Sprintf("📆 Выбрано: <b>%s</b>\nДобавь ещё дни или нажми «Готово».", schedule.DisplayText())
}

func (b *Bot) finishTrackerCreation(ctx context.Context, input trackerInput, chatID int64) error {
	emoji := input.Emoji
	if emoji == "" {
		emoji = defaultEmoji
	}
	color := input.Color
	if color == "" {
		color = defaultColor
	}
	category := input.Category
	if category == "" {
		category = model.FallbackCategoryTitle
	}

	tracker := model.NewTracker(normalizeTitle(input.Name), color, emoji, input.Schedule)
	if err := b.provider.AddTracker(ctx, tracker, category); err != nil {
		return b.sendText(chatID, fmt.Sprintf("Не удалось сохранить трекер: %s", escape(err.Error())))
	}

	log.Printf("[info] tracker created id=%s category=%q days=%d", tracker.ID, category, tracker.Schedule.Len())

	var summary strings.Builder
	summary.WriteString("✅ <b>Трекер сохранён</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>Название:</b> %s %s\n", emoji, escape(tracker.Name)))
	summary.WriteString(fmt.Sprintf("• <b>Категория:</b> %s\n", escape(category)))
	if tracker.Schedule.IsEmpty() {
		summary.WriteString("• <b>Расписание:</b> каждый день\n")
	} else {
		summary.WriteString(fmt.Sprintf("• <b>Расписание:</b> %s\n", tracker.Schedule.DisplayText()))
	}

	reply := tgbotapi.NewMessage(chatID, strings.TrimSpace(summary.String()))
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	reply.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(reply); err != nil {
		return err
	}
	return b.sendTrackerList(ctx, chatID)
}

// sendTrackerList renders the provider's visible set for the selected date:
// one block per category, one toggle button per tracker.
func (b *Bot) sendTrackerList(ctx context.Context, chatID int64) error {
	date := b.provider.CurrentDate()

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📋 <b>Трекеры на %s</b> (%s)\n", date.Format("02.01.2006"), model.WeekDayFromDate(date).FullName()))
	builder.WriteString("Нажми на кнопку, чтобы отметить день или снять отметку.\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	total := 0
	for sectionIndex := 0; sectionIndex < b.provider.NumberOfCategories(); sectionIndex++ {
		builder.WriteString(fmt.Sprintf("<b>%s</b>\n", escape(b.provider.CategoryTitleAt(sectionIndex))))
		for rowIndex := 0; rowIndex < b.provider.NumberOfTrackersInCategory(sectionIndex); rowIndex++ {
			tracker := b.provider.TrackerAt(sectionIndex, rowIndex)
			if tracker == nil {
				continue
			}
			total++
			builder.WriteString(b.formatTrackerRow(ctx, *tracker, date))

			row := []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s %s", tracker.Emoji, shortTitle(tracker.Name, 20)),
					cbTogglePrefix+tracker.ID.String(),
				),
				tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", cbDeletePrefix+tracker.ID.String()),
			}
			buttons = append(buttons, row)
		}
		builder.WriteByte('\n')
	}

	if total == 0 {
		return b.sendText(chatID, "На эту дату трекеров нет. Добавь новый через /newtracker.")
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) formatTrackerRow(ctx context.Context, tracker model.Tracker, date time.Time) string {
	var sb strings.Builder

	mark := "⬜"
	if done, err := b.completionSvc.IsCompletedOn(ctx, tracker.ID, date); err == nil && done {
		mark = "✅"
	}
	totalDays, _ := b.completionSvc.TotalCompletions(ctx, tracker.ID)

	sb.WriteString(fmt.Sprintf("%s %s %s · %d дн.\n", mark, tracker.Emoji, escape(tracker.Name), totalDays))
	if text := tracker.Schedule.DisplayText(); text != "" {
		sb.WriteString(fmt.Sprintf("   📆 %s\n", text))
	}
	return sb.String()
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	data := cb.Data
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	switch {
	case strings.HasPrefix(data, cbTogglePrefix):
		trackerID, err := parseTrackerID(data, cbTogglePrefix)
		if err != nil {
			return nil
		}
		log.Printf("[info] callback toggle user=%d tracker=%s", cb.From.ID, trackerID)
		return b.toggleAndRefresh(ctx, cb.Message.Chat.ID, trackerID)
	case strings.HasPrefix(data, cbDeletePrefix):
		trackerID, err := parseTrackerID(data, cbDeletePrefix)
		if err != nil {
			return nil
		}
		log.Printf("[info] callback delete request user=%d tracker=%s", cb.From.ID, trackerID)
		return b.askDeleteConfirmation(cb.Message.Chat.ID, cb.From, trackerID)
	case strings.HasPrefix(data, cbConfirmPrefix):
		trackerID, err := parseTrackerID(data, cbConfirmPrefix)
		if err != nil {
			return nil
		}
		return b.deleteTrackerAndRefresh(ctx, cb.Message.Chat.ID, cb.From, trackerID)
	case strings.HasPrefix(data, cbCancelPrefix):
		return nil
	default:
		return nil
	}
}

func (b *Bot) toggleAndRefresh(ctx context.Context, chatID int64, trackerID uuid.UUID) error {
	date := b.provider.CurrentDate()
	completed, err := b.completionSvc.Toggle(ctx, trackerID, date)
	if err != nil {
		if errors.Is(err, service.ErrFutureDate) {
			return b.sendText(chatID, "⏳ Нельзя отметить трекер на будущую дату.")
		}
		return b.sendText(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}

	log.Printf("[info] toggled tracker=%s day=%s completed=%t", trackerID, model.DayOf(date).Format("2006-01-02"), completed)

	info := "↩️ Отметка снята."
	if completed {
		info = "✅ День отмечен выполненным."
	}
	if err := b.sendText(chatID, info); err != nil {
		return err
	}
	return b.sendTrackerList(ctx, chatID)
}

func (b *Bot) askDeleteConfirmation(chatID int64, from *tgbotapi.User, trackerID uuid.UUID) error {
	tracker := b.findVisibleTracker(trackerID)
	if tracker == nil {
		return b.sendText(chatID, "Трекер не найден.")
	}

	text := fmt.Sprintf("Удалить трекер «%s» вместе со всей историей отметок?", escape(tracker.Name))
	b.setConfirmation(from.ID, confirmationRequest{trackerID: trackerID, name: tracker.Name})
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.deleteTrackerAndRefresh(ctx, msg.Chat.ID, msg.From, req.trackerID)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendMenuPlaceholder(msg.Chat.ID)
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Подтверди или отмени удаление трекера.", confirmKeyboard())
	}
}

func (b *Bot) deleteTrackerAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, trackerID uuid.UUID) error {
	b.clearConfirmation(from.ID)

	tracker := b.findVisibleTracker(trackerID)
	name := "трекер"
	if tracker != nil {
		name = tracker.Name
	}

	if err := b.provider.DeleteTracker(ctx, trackerID); err != nil {
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}

	log.Printf("[info] tracker deleted id=%s user=%d", trackerID, from.ID)
	if err := b.sendTextWithRemove(chatID, fmt.Sprintf("🗑 Трекер «%s» удалён.", escape(name))); err != nil {
		return err
	}

	return b.sendTrackerList(ctx, chatID)
}

func (b *Bot) findVisibleTracker(trackerID uuid.UUID) *model.Tracker {
	for _, tracker := range b.provider.VisibleTrackers() {
		if tracker.ID == trackerID {
			t := tracker
			return &t
		}
	}
	return nil
}

func parseTrackerID(data, prefix string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(data, prefix))
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewTracker):
		return true, b.startNewTrackerConversation(msg)
	case strings.ToLower(menuLabelToday):
		return true, b.sendTrackerList(ctx, msg.Chat.ID)
	case strings.ToLower(menuLabelCategories):
		return true, b.handleCategories(ctx, msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendTextWithRemove(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.api.Send(msg); err != nil {
		return err
	}
	return b.sendMenuPlaceholder(chatID)
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendMenuPlaceholder(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "🔹 Главное меню")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) getConfirmation(userID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[userID]
	return req, ok
}

func (b *Bot) setConfirmation(userID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[userID] = req
}

func (b *Bot) clearConfirmation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, userID)
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTracker),
			tgbotapi.NewKeyboardButton(menuLabelToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelCategories),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// categoryKeyboard offers the stored categories plus skip/cancel.
func (b *Bot) categoryKeyboard(ctx context.Context) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton

	categories, err := b.categorySvc.List(ctx)
	if err != nil {
		log.Printf("list categories for keyboard: %v", err)
	}
	var row []tgbotapi.KeyboardButton
	for _, cat := range categories {
		row = append(row, tgbotapi.NewKeyboardButton(cat.Title))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnSkip),
		tgbotapi.NewKeyboardButton(btnCancelDialog),
	))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func colorKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🔴 Красный"),
			tgbotapi.NewKeyboardButton("🟠 Оранжевый"),
			tgbotapi.NewKeyboardButton("🟢 Зелёный"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🔵 Синий"),
			tgbotapi.NewKeyboardButton("🟣 Фиолетовый"),
			tgbotapi.NewKeyboardButton("🟡 Жёлтый"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func scheduleKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Пн"),
			tgbotapi.NewKeyboardButton("Вт"),
			tgbotapi.NewKeyboardButton("Ср"),
			tgbotapi.NewKeyboardButton("Чт"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Пт"),
			tgbotapi.NewKeyboardButton("Сб"),
			tgbotapi.NewKeyboardButton("Вс"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDone),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

// colorToken maps a palette button to the stored color token; free-form
// input is stored as-is.
func colorToken(text string) string {
	switch strings.TrimSpace(strings.ToLower(text)) {
	case "🔴 красный", "красный":
		return "#FD4C49"
	case "🟠 оранжевый", "оранжевый":
		return "#FF881E"
	case "🟢 зелёный", "зелёный":
		return "#33CF69"
	case "🔵 синий", "синий":
		return "#3772E7"
	case "🟣 фиолетовый", "фиолетовый":
		return "#8E44AF"
	case "🟡 жёлтый", "жёлтый":
		return "#F9D54C"
	default:
		return strings.TrimSpace(text)
	}
}

func weekDayFromShortName(text string) (model.WeekDay, bool) {
	clean := strings.TrimSpace(text)
	for _, d := range model.AllWeekDays() {
		if strings.EqualFold(clean, d.ShortName()) {
			return d, true
		}
	}
	return 0, false
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "пропустить" || value == "skip"
}

func isDoneInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnDone) || value == "готово" || value == "done"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "подтвердить" || value == "да"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "отмена"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "отменить ввод" || value == "отмена"
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func escape(s string) string {
	return html.EscapeString(s)
}
