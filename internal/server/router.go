package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	catalogctrl "lectern/internal/catalog/controller"
	inventoryctrl "lectern/internal/inventory/controller"
	orderctrl "lectern/internal/order/controller"
)

func NewRouter(
	lessonsCtrl *catalogctrl.LessonsController,
	ordersCtrl *orderctrl.OrdersController,
	capacityCtrl *inventoryctrl.CapacityController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/lessons", lessonsCtrl.HandleListLessons)
		r.Get("/lessons/{lessonId}", lessonsCtrl.HandleGetLesson)
		r.Put("/lessons/{lessonId}/capacity", capacityCtrl.DecreaseCapacity)

		r.Get("/orders", ordersCtrl.HandleListOrders)
		r.Post("/orders", ordersCtrl.HandleSubmitOrder)
		r.Get("/orders/{orderId}", ordersCtrl.HandleGetOrder)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
