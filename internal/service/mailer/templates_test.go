package mailer

import (
	"strings"
	"testing"
)

func TestStockNotificationTemplate(t *testing.T) {
	subject := stockNotificationSubject("Refurbished iPhone 13")
	if subject != "Refurbished iPhone 13 is Back in Stock!" {
		t.Errorf("unexpected subject: %q", subject)
	}

	body := stockNotificationBody("EcoTrade", "Refurbished iPhone 13", "http://localhost:5173/product/42")
	if !strings.Contains(body, "Refurbished iPhone 13") {
		t.Error("body must mention the product name")
	}
	if !strings.Contains(body, `href="http://localhost:5173/product/42"`) {
		t.Error("body must link to the product page")
	}
	if !strings.Contains(body, "EcoTrade") {
		t.Error("body must carry the app name")
	}
}

func TestNewsletterWelcomeTemplate(t *testing.T) {
	subject := newsletterWelcomeSubject("EcoTrade")
	if subject != "Welcome to the EcoTrade Newsletter!" {
		t.Errorf("unexpected subject: %q", subject)
	}

	body := newsletterWelcomeBody("EcoTrade", "http://localhost:5173")
	if !strings.Contains(body, `href="http://localhost:5173"`) {
		t.Error("body must link to the storefront")
	}
}

func TestServiceRequestReceivedTemplate(t *testing.T) {
	body := serviceRequestReceivedBody("EcoTrade", "repair", "abc-123")
	if !strings.Contains(body, "repair") {
		t.Error("body must mention the request type")
	}
	if !strings.Contains(body, "abc-123") {
		t.Error("body must carry the reference ID")
	}
}
