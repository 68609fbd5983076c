package mailer

import (
	"fmt"
	"time"
)

func stockNotificationSubject(productName string) string {
	return fmt.Sprintf("%s is Back in Stock!", productName)
}

func stockNotificationBody(appName, productName, productURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px;">
    <h1 style="color: #16a34a;">Good News!</h1>
    <h2>Your Wishlist Item is Back in Stock!</h2>
    <p>Great news! <strong>%s</strong> is now back in stock and ready to order.</p>
    <p>Don't miss out - this popular item sells out quickly!</p>
    <p><a href="%s" style="display: inline-block; padding: 14px 40px; background-color: #16a34a; color: #ffffff; text-decoration: none; font-weight: bold;">View Product</a></p>
    <hr style="border: none; border-top: 1px solid #e5e7eb;">
    <p style="color: #6b7280; font-size: 14px;">You received this email because you requested to be notified when this product becomes available.</p>
    <p style="color: #6b7280; font-size: 14px;">&copy; %d %s. All rights reserved.</p>
  </div>
</body>
</html>`, productName, productURL, time.Now().Year(), appName)
}

func newsletterWelcomeSubject(appName string) string {
	return fmt.Sprintf("Welcome to the %s Newsletter!", appName)
}

func newsletterWelcomeBody(appName, frontendURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px;">
    <h1 style="color: #16a34a;">Welcome aboard!</h1>
    <p>Thanks for subscribing to the %s newsletter. You'll be the first to hear about refurbished deals, restocks and trade-in offers.</p>
    <p><a href="%s" style="display: inline-block; padding: 14px 40px; background-color: #16a34a; color: #ffffff; text-decoration: none; font-weight: bold;">Browse the store</a></p>
    <p style="color: #6b7280; font-size: 14px;">&copy; %d %s. All rights reserved.</p>
  </div>
</body>
</html>`, appName, frontendURL, time.Now().Year(), appName)
}

func serviceRequestReceivedSubject(appName string) string {
	return fmt.Sprintf("%s received your service request", appName)
}

func serviceRequestReceivedBody(appName, requestType, requestID string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px;">
    <h1 style="color: #16a34a;">Request received</h1>
    <p>We got your <strong>%s</strong> request. Our team will review it and get back to you shortly.</p>
    <p style="color: #6b7280; font-size: 14px;">Reference: %s</p>
    <p style="color: #6b7280; font-size: 14px;">&copy; %d %s. All rights reserved.</p>
  </div>
</body>
</html>`, requestType, requestID, time.Now().Year(), appName)
}
