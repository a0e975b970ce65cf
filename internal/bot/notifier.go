package bot

import (
	"context"
	"fmt"
	"ortus-club/internal/models"
	"time"

	"go.uber.org/zap"
)

// Notifier - уведомления администраторам. Ошибки доставки только логируются.
// Реализации не должны блокировать вызывающий запрос.
type Notifier interface {
	LateTimingReport(ctx context.Context, report *models.TimingReport)
	SessionFinished(ctx context.Context, session *models.TrainingSession)
}

func (b *Bot) LateTimingReport(_ context.Context, report *models.TimingReport) {
	b.enqueue(lateReportText(report))
}

func (b *Bot) SessionFinished(_ context.Context, session *models.TrainingSession) {
	b.enqueue(sessionFinishedText(session, b.loc))
}

// enqueue не ждёт Telegram, при переполненной очереди сообщение теряется
func (b *Bot) enqueue(text string) {
	select {
	case b.outbox <- text:
	default:
		b.logger.Warn("очередь уведомлений переполнена, сообщение пропущено", zap.Int("size", cap(b.outbox)))
	}
}

// deliver рассылает очередь до отмены ctx
func (b *Bot) deliver(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-b.outbox:
			b.broadcast(text)
		}
	}
}

func lateReportText(r *models.TimingReport) string {
	return fmt.Sprintf("⏰ *Отчёт с опозданием*\nТренер: %d\nДата: %s\nСлот: %s",
		r.TrainerID, r.TrainingDate.Format("02.01.2006"), r.Slot)
}

// sessionFinishedText - время начала и конца в часовом поясе клуба
func sessionFinishedText(s *models.TrainingSession, loc *time.Location) string {
	text := fmt.Sprintf("✅ *Тренировка завершена*\nГруппа: %d\nТренер: %d\nДата: %s",
		s.GroupID, s.TrainerID, s.SessionDate.Format("02.01.2006"))
	if s.StartedAt != nil && s.FinishedAt != nil {
		text += fmt.Sprintf("\nВремя: %s - %s", s.StartedAt.In(loc).Format("15:04"), s.FinishedAt.In(loc).Format("15:04"))
	}
	return text
}

// Nop используется, когда BOT_TOKEN не задан
type Nop struct{}

func (Nop) LateTimingReport(context.Context, *models.TimingReport)   {}
func (Nop) SessionFinished(context.Context, *models.TrainingSession) {}
