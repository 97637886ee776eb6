// Package discord posts a rendered report image to a Discord webhook.
//
// A message is sent as multipart/form-data with two parts: payload_json,
// holding the JSON message body, and files[0], holding the PNG attachment.
// Discord shows the attachment inline under the message content.
package discord
