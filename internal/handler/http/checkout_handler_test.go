package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmbm-clothing/storefront/internal/cart"
	"github.com/mmbm-clothing/storefront/internal/catalog"
	storeHttp "github.com/mmbm-clothing/storefront/internal/handler/http"
	"github.com/mmbm-clothing/storefront/internal/messaging"
	"github.com/mmbm-clothing/storefront/internal/order"
)

// stubChannel records the last message without going anywhere near a real
// messaging app.
type stubChannel struct {
	lastText string
}

func (s *stubChannel) Send(_ context.Context, text string) (string, error) {
	s.lastText = text
	return "https://wa.me/233503561270?text=encoded", nil
}

var _ messaging.Channel = (*stubChannel)(nil)

func newCheckoutTestClient(t *testing.T) (*client, *stubChannel) {
	t.Helper()

	store, err := catalog.NewStoreFromYAML([]byte(handlerTestProducts))
	require.NoError(t, err)

	sessions := cart.NewSessions(time.Hour)
	t.Cleanup(func() { _ = sessions.Close() })

	channel := &stubChannel{}
	composer := order.NewComposer(channel)

	router := chi.NewRouter()
	router.Use(storeHttp.SessionMiddleware)
	storeHttp.NewCartHandler(store, sessions).RegisterRoutes(router)
	storeHttp.NewCheckoutHandler(sessions, composer).RegisterRoutes(router)

	return &client{t: t, router: router}, channel
}

func validCheckoutForm() order.Form {
	return order.Form{
		Name:           "Ama Mensah",
		Phone:          "0503561270",
		DeliveryMethod: order.DeliveryPickup,
		PaymentMethod:  order.PaymentCash,
	}
}

func TestCheckoutHandler_Success(t *testing.T) {
	c, channel := newCheckoutTestClient(t)

	c.do(http.MethodPost, "/cart/items", storeHttp.AddItemRequest{ProductID: "p1"})
	c.do(http.MethodPost, "/cart/items", storeHttp.AddItemRequest{ProductID: "p2", Size: "M", Color: "Sky Blue"})

	rr := c.do(http.MethodPost, "/checkout", validCheckoutForm())
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp storeHttp.CheckoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.NotNil(t, resp.Order)
	assert.NotEmpty(t, resp.Order.ID)
	assert.Equal(t, "80", resp.Order.Total.String())
	assert.Len(t, resp.Order.Items, 2)
	assert.Equal(t, "https://wa.me/233503561270?text=encoded", resp.HandoffURL)

	assert.Contains(t, channel.lastText, "Woven Leather Belt")
	assert.Contains(t, channel.lastText, "Classic White Shirt")
	assert.Contains(t, channel.lastText, "Total: GH₵ 80.00")

	// A successful submission clears the cart.
	view := c.cartOf(c.do(http.MethodGet, "/cart", nil))
	assert.Empty(t, view.Items)
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	c, channel := newCheckoutTestClient(t)

	rr := c.do(http.MethodPost, "/checkout", validCheckoutForm())

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Empty(t, channel.lastText)
}

func TestCheckoutHandler_ValidationFailure(t *testing.T) {
	c, channel := newCheckoutTestClient(t)
	c.do(http.MethodPost, "/cart/items", storeHttp.AddItemRequest{ProductID: "p1"})

	form := validCheckoutForm()
	form.Name = ""

	rr := c.do(http.MethodPost, "/checkout", form)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp storeHttp.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Details, "Name")

	// Nothing was sent and the cart is untouched.
	assert.Empty(t, channel.lastText)
	view := c.cartOf(c.do(http.MethodGet, "/cart", nil))
	assert.Len(t, view.Items, 1)
}

func TestCheckoutHandler_DeliveryRequiresAddress(t *testing.T) {
	c, _ := newCheckoutTestClient(t)
	c.do(http.MethodPost, "/cart/items", storeHttp.AddItemRequest{ProductID: "p1"})

	form := validCheckoutForm()
	form.DeliveryMethod = order.DeliveryDelivery

	rr := c.do(http.MethodPost, "/checkout", form)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp storeHttp.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "Address")

	form.Address = "12 Oxford Street, Osu, Accra"
	rr = c.do(http.MethodPost, "/checkout", form)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCheckoutHandler_InvalidPayload(t *testing.T) {
	c, _ := newCheckoutTestClient(t)
	c.do(http.MethodPost, "/cart/items", storeHttp.AddItemRequest{ProductID: "p1"})

	rr := c.do(http.MethodPost, "/checkout", map[string]interface{}{"name": "Ama", "unexpected": true})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
