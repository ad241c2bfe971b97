package messaging_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmbm-clothing/storefront/internal/messaging"
)

func TestNewWhatsApp(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "plain_digits", phone: "233503561270"},
		{name: "international_format", phone: "+233 50 356 1270"},
		{name: "dashes", phone: "233-50-356-1270"},
		{name: "empty", phone: "", wantErr: true},
		{name: "letters", phone: "callme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channel, err := messaging.NewWhatsApp(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, channel)
			}
		})
	}
}

func TestWhatsApp_Send(t *testing.T) {
	channel, err := messaging.NewWhatsApp("+233 50 356 1270")
	require.NoError(t, err)

	link, err := channel.Send(context.Background(), "New reservation MMBM-X\n\nTotal: GH₵ 100.00")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/233503561270?"), "got %q", link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "New reservation MMBM-X\n\nTotal: GH₵ 100.00", parsed.Query().Get("text"))
}
