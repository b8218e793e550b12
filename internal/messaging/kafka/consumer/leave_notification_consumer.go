package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/preyapanngam2004-art/leave-project/internal/events"
	"github.com/preyapanngam2004-art/leave-project/internal/mailer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveNotifications turns staged leave events into outbound email.
// Mail delivery is best effort: a failed send is logged and the message is
// committed anyway, so a flaky SMTP server cannot wedge the partition.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	mail mailer.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		if err := handleNotification(msg.Value, mail, log); err != nil {
			log.Error("send leave notification failed", zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

func handleNotification(payload []byte, mail mailer.Mailer, log *zap.Logger) error {
	var probe struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return fmt.Errorf("decode notification envelope: %w", err)
	}

	switch probe.EventType {
	case events.TypeLeaveSubmitted:
		var event events.LeaveSubmittedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("decode %s event: %w", probe.EventType, err)
		}
		subject, body := renderSubmittedMail(event)
		if err := mail.Send(event.Recipient, subject, body); err != nil {
			return err
		}
		log.Info("approver notified of new leave request",
			zap.Int64("leave_request_id", event.RequestID),
			zap.String("request_number", event.RequestNumber),
		)
		return nil

	case events.TypeLeaveDecided:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("decode %s event: %w", probe.EventType, err)
		}
		subject, body := renderDecidedMail(event)
		if err := mail.Send(event.Recipient, subject, body); err != nil {
			return err
		}
		log.Info("employee notified of leave decision",
			zap.Int64("leave_request_id", event.RequestID),
			zap.String("status", event.Status),
		)
		return nil

	default:
		log.Warn("unknown leave notification event type, skipping",
			zap.String("event_type", probe.EventType),
		)
		return nil
	}
}

func renderSubmittedMail(e events.LeaveSubmittedEvent) (subject, body string) {
	subject = fmt.Sprintf("New leave request %s awaiting your approval", e.RequestNumber)

	attachmentLine := ""
	if e.AttachmentPath != "" {
		attachmentLine = "<p>An attachment was included with this request.</p>"
	}

	body = fmt.Sprintf(`
<h3>New Leave Request</h3>
<p><b>%s</b> has submitted leave request <b>%s</b>.</p>
<ul>
  <li>Period: %s to %s</li>
  <li>Reason: %s</li>
</ul>
%s
<p>Please review it in the leave system.</p>
`, e.EmployeeName, e.RequestNumber, e.StartDate, e.EndDate, e.Reason, attachmentLine)

	return subject, body
}

func renderDecidedMail(e events.LeaveDecidedEvent) (subject, body string) {
	subject = fmt.Sprintf("Your leave request has been %s", e.Status)

	body = fmt.Sprintf(`
<h3>Leave Request Decision</h3>
<p>Your <b>%s</b> request starting <b>%s</b> has been <b>%s</b>.</p>
`, e.TypeName, e.StartDate, e.Status)

	return subject, body
}
