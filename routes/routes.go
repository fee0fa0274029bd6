package routes

import (
	"net/http"
	"strings"

	"fuelreq/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	reqHandler *handlers.RequisitionHandler,
	vehicleHandler *handlers.VehicleHandler,
	dashboardHandler *handlers.DashboardHandler,
	settingsHandler *handlers.SettingsHandler,
	bulkHandler *handlers.BulkHandler,
	screenHandler *handlers.ScreenHandler,
) {
	// Requisition routes
	http.Handle("/requisicoes", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			reqHandler.CreateRequisition(w, r)
		case http.MethodGet:
			reqHandler.ListRequisitions(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	http.Handle("/requisicoes/status", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		reqHandler.UpdateStatus(w, r)
	}))))

	// Requisition by ID plus the per-record sub-resources:
	//   /requisicoes/{id}          GET
	//   /requisicoes/{id}/uso      PUT
	//   /requisicoes/{id}/enviar   POST
	//   /requisicoes/{id}/pdf      GET
	http.Handle("/requisicoes/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		rest := r.URL.Path[len("/requisicoes/"):]
		id, sub, _ := strings.Cut(rest, "/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch {
		case sub == "" && r.Method == http.MethodGet:
			reqHandler.GetRequisition(w, r, id)
		case sub == "uso" && r.Method == http.MethodPut:
			reqHandler.CompleteRequisition(w, r, id)
		case sub == "enviar" && r.Method == http.MethodPost:
			reqHandler.SendRequisition(w, r, id)
		case sub == "pdf" && r.Method == http.MethodGet:
			reqHandler.RequisitionPDF(w, r, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))))

	// Registry routes
	http.Handle("/cadastros", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			vehicleHandler.ListVehicles(w, r)
		case http.MethodPost:
			vehicleHandler.UpsertVehicle(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Dashboard routes
	http.Handle("/dashboard", withCORS(http.HandlerFunc(handlers.RecoverWrapper(dashboardHandler.Dashboard))))
	http.Handle("/narrativas", withCORS(http.HandlerFunc(handlers.RecoverWrapper(dashboardHandler.Narratives))))

	// Settings routes
	http.Handle("/configuracoes", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settingsHandler.GetSettings(w, r)
		case http.MethodPost:
			settingsHandler.SaveSettings(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))

	// Bulk import/export routes
	http.Handle("/importar/cadastros", withCORS(http.HandlerFunc(handlers.RecoverWrapper(bulkHandler.ImportVehicles))))
	http.Handle("/importar/abastecimentos", withCORS(http.HandlerFunc(handlers.RecoverWrapper(bulkHandler.ImportRequisitions))))
	http.Handle("/exportar/abastecimentos", withCORS(http.HandlerFunc(handlers.RecoverWrapper(bulkHandler.ExportRequisitions))))
	http.Handle("/exportar/abastecimentos/email", withCORS(http.HandlerFunc(handlers.RecoverWrapper(bulkHandler.MailExport))))

	// Screen session routes
	http.Handle("/tela", withCORS(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			screenHandler.GetScreen(w, r)
		case http.MethodPost:
			screenHandler.ApplyScreenAction(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))))
}
