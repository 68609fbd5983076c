package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrade/config"
	"ecotrade/pkg/circuitbreaker"
	"ecotrade/pkg/metrics"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrDelivery covers every failure mode of a send: SMTP auth, network,
// rejected address, timeout and an open breaker. Callers only branch on
// this sentinel, never on the transport detail.
var ErrDelivery = errors.New("email delivery failed")

// Mailer sends transactional email over SMTP. One dialer configuration is
// shared by all sends; each send opens its own connection, so the Mailer is
// safe for concurrent use.
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	appName     string
	frontendURL string
	sendTimeout time.Duration
	breaker     *circuitbreaker.CircuitBreaker
	logger      *zap.Logger
}

func New(cfg config.MailConfig, app config.AppConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:        fmt.Sprintf("%s <%s>", app.Name, cfg.From),
		appName:     app.Name,
		frontendURL: app.FrontendURL,
		sendTimeout: time.Duration(cfg.SendTimeoutSeconds) * time.Second,
		breaker:     circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:      logger,
	}
}

// SendStockNotification emails a subscriber that a product is purchasable
// again. The body links back to the product page.
func (m *Mailer) SendStockNotification(ctx context.Context, email, productName string, productID int64) error {
	productURL := fmt.Sprintf("%s/product/%d", m.frontendURL, productID)
	return m.send(ctx, "stock_notification", email,
		stockNotificationSubject(productName),
		stockNotificationBody(m.appName, productName, productURL),
	)
}

func (m *Mailer) SendNewsletterWelcome(ctx context.Context, email string) error {
	return m.send(ctx, "newsletter_welcome", email,
		newsletterWelcomeSubject(m.appName),
		newsletterWelcomeBody(m.appName, m.frontendURL),
	)
}

func (m *Mailer) SendServiceRequestReceived(ctx context.Context, email, requestType, requestID string) error {
	return m.send(ctx, "service_request_received", email,
		serviceRequestReceivedSubject(m.appName),
		serviceRequestReceivedBody(m.appName, requestType, requestID),
	)
}

func (m *Mailer) send(ctx context.Context, template, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	start := time.Now()
	err := m.breaker.Execute(func() error {
		return m.dialAndSend(ctx, msg)
	})

	if err != nil {
		metrics.RecordEmailSend(template, "failed", time.Since(start))
		m.logger.Error("Email send failed",
			zap.String("template", template),
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	metrics.RecordEmailSend(template, "success", time.Since(start))
	m.logger.Info("Email sent",
		zap.String("template", template),
		zap.String("to", to),
	)
	return nil
}

// dialAndSend wraps the blocking gomail call with the configured per-send
// timeout. On timeout the SMTP goroutine is abandoned; its eventual result
// is discarded via the buffered channel.
func (m *Mailer) dialAndSend(ctx context.Context, msg *gomail.Message) error {
	ctx, cancel := context.WithTimeout(ctx, m.sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
