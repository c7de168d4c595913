package notify

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"stockadvisors/internal/appconfig"
	"stockadvisors/internal/logger"

	nfy "github.com/nikoksr/notify"
	nfyhttp "github.com/nikoksr/notify/service/http"
	nfyslack "github.com/nikoksr/notify/service/slack"
	nfytg "github.com/nikoksr/notify/service/telegram"
)

// Manager wraps nikoksr/notify.Notify and manages channel lifecycle.
type Manager struct {
	mu           sync.RWMutex
	notifier     *nfy.Notify
	channelNames []string
}

func NewManager() *Manager {
	return &Manager{notifier: nfy.New()}
}

// Reload rebuilds the notification channels from config.
func (m *Manager) Reload(cfg appconfig.NotifyConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Fresh notifier instance (drops old services)
	n := nfy.New()
	var names []string

	if !cfg.Enabled {
		m.notifier = n
		m.channelNames = nil
		return
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		tgSvc, err := nfytg.New(cfg.TelegramToken)
		if err == nil {
			if id, err := strconv.ParseInt(strings.TrimSpace(cfg.TelegramChatID), 10, 64); err == nil {
				tgSvc.AddReceivers(id)
				n.UseServices(tgSvc)
				names = append(names, "telegram")
			} else {
				logger.Notify.Warn().Str("chat_id", cfg.TelegramChatID).Msg("invalid Telegram chat ID")
			}
		} else {
			logger.Notify.Warn().Err(err).Msg("Telegram service init failed")
		}
	}

	if cfg.SlackToken != "" && cfg.SlackChannelID != "" {
		slackSvc := nfyslack.New(cfg.SlackToken)
		slackSvc.AddReceivers(strings.TrimSpace(cfg.SlackChannelID))
		n.UseServices(slackSvc)
		names = append(names, "slack")
	}

	if cfg.WebhookURL != "" {
		whSvc := nfyhttp.New()
		whSvc.AddReceivers(&nfyhttp.Webhook{
			URL:         cfg.WebhookURL,
			ContentType: "application/json; charset=utf-8",
			Method:      "POST",
		})
		n.UseServices(whSvc)
		names = append(names, "webhook")
	}

	m.notifier = n
	m.channelNames = names

	logger.Notify.Info().Int("channels", len(names)).Strs("names", names).Msg("notification channels loaded")
}

// Send dispatches a message to all configured channels.
func (m *Manager) Send(ctx context.Context, subject, text string) error {
	m.mu.RLock()
	n := m.notifier
	m.mu.RUnlock()

	if n == nil {
		return nil
	}
	return n.Send(ctx, subject, text)
}

// HasChannels returns true if at least one channel is configured.
func (m *Manager) HasChannels() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.channelNames) > 0
}

// ChannelNames returns the names of all configured channels.
func (m *Manager) ChannelNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]string, len(m.channelNames))
	copy(result, m.channelNames)
	return result
}
