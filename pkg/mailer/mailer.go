package mailer

import (
	"crypto/tls"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Config SMTP 发信配置
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" default:"587"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from-name"`
	// SkipVerify 跳过 TLS 证书校验, 仅用于自建邮件服务
	SkipVerify bool `yaml:"skip-verify"`
}

// Mailer SMTP 邮件发送器
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

func NewMailer(cfg Config) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.SkipVerify {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host}
	}
	return &Mailer{config: cfg, dialer: d}
}

// IsEnabled 是否已配置发信服务
func (m *Mailer) IsEnabled() bool {
	return m.config.Host != "" && m.config.From != ""
}

// Send 发送一封 HTML 邮件
func (m *Mailer) Send(to string, subject string, htmlBody string) error {
	if !m.IsEnabled() {
		return fmt.Errorf("mailer is not configured")
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
