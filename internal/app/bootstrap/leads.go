package bootstrap

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"

	appconfig "github.com/wolfman30/window-quote/internal/config"
	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/notify"
	"github.com/wolfman30/window-quote/internal/observability/metrics"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// BuildLeadRepository uses Postgres when a pool is available.
func BuildLeadRepository(pool *pgxpool.Pool, logger *logging.Logger) leads.Repository {
	if pool == nil {
		if logger != nil {
			logger.Warn("DATABASE_URL not set or unreachable; leads are kept in memory")
		}
		return leads.NewInMemoryRepository()
	}
	return leads.NewPostgresRepository(pool)
}

// BuildLeadPublisher returns an SQS publisher when LEAD_QUEUE_URL is set.
func BuildLeadPublisher(cfg *appconfig.Config, awsCfg *aws.Config) leads.Publisher {
	if awsCfg == nil || strings.TrimSpace(cfg.LeadQueueURL) == "" {
		return nil
	}
	return leads.NewSQSPublisher(sqs.NewFromConfig(*awsCfg), cfg.LeadQueueURL)
}

// BuildEmailSender selects the provider named by EMAIL_PROVIDER. A provider
// missing its credentials falls back to the stub so the API still starts.
func BuildEmailSender(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.EmailProvider {
	case appconfig.EmailProviderSendGrid:
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("EMAIL_PROVIDER=sendgrid without SENDGRID_API_KEY; using stub sender")
	case appconfig.EmailProviderSES:
		if awsCfg != nil && cfg.SESFromEmail != "" {
			return notify.NewSESSender(sesv2.NewFromConfig(*awsCfg), notify.SESConfig{
				FromEmail: cfg.SESFromEmail,
				FromName:  cfg.SendGridFromName,
			}, logger)
		}
		logger.Warn("EMAIL_PROVIDER=ses without AWS config or SES_FROM_EMAIL; using stub sender")
	}
	return notify.NewStubEmailSender(logger)
}

// BuildIntake assembles the lead intake with whatever downstream pieces are configured.
func BuildIntake(cfg *appconfig.Config, repo leads.Repository, publisher leads.Publisher, email notify.EmailSender, m *metrics.QuoteMetrics, logger *logging.Logger, extra ...leads.IntakeOption) *leads.Intake {
	opts := []leads.IntakeOption{leads.WithMetrics(m)}
	if publisher != nil {
		opts = append(opts, leads.WithPublisher(publisher))
	}
	if notifier := notify.NewLeadNotifier(email, cfg.SalesNotifyEmail, logger); notifier != nil {
		opts = append(opts, leads.WithNotifier(notifier))
	}
	return leads.NewIntake(repo, logger, append(opts, extra...)...)
}
