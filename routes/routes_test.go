package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookiteasy/handlers"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Booking:  handlers.NewBookingHandler(nil),
		Business: handlers.NewBusinessHandler(nil),
		User:     handlers.NewUserHandler(nil),
	})
	return r
}

func TestBookingRoutesRequireToken(t *testing.T) {
	r := newRouter()
	cases := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/bookings/available-slots?serviceId=svc-1&dateTime=2030-06-03"},
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/bookings/bk-1"},
		{http.MethodPut, "/api/bookings/bk-1"},
		{http.MethodPut, "/api/bookings/bk-1/cancel"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.target, w.Code)
		}
	}
}
