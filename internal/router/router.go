package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	mem "petsafe-api/internal/adapters/storage/memory"
	pg "petsafe-api/internal/adapters/storage/postgres"
	"petsafe-api/internal/domain/appointments"
	"petsafe-api/internal/domain/clinics"
	"petsafe-api/internal/domain/dashboard"
	"petsafe-api/internal/domain/documents"
	"petsafe-api/internal/domain/pets"
	"petsafe-api/internal/domain/reports"
	"petsafe-api/internal/middleware"
	"petsafe-api/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-Clinic-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger *zap.Logger

	// SeedClinics precarga clínicas en el repo (dev/tests).
	// El provisioning real de cuentas vive fuera de este servicio.
	SeedClinics []clinics.Clinic
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		clinicsRepo clinics.Repository
		petsRepo    pets.Repository
		apptsRepo   appointments.Repository
		docsRepo    documents.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		clinicsRepo = pg.NewClinicsRepo(db)
		petsRepo = pg.NewPetsRepo(db)
		apptsRepo = pg.NewAppointmentsRepo(db)
		docsRepo = pg.NewDocumentsRepo(db)
	} else {
		clinicsRepo = mem.NewClinicsRepo()
		petsRepo = mem.NewPetsRepo()
		apptsRepo = mem.NewAppointmentsRepo()
		docsRepo = mem.NewDocumentsRepo()
	}

	for _, c := range opts.SeedClinics {
		_ = clinicsRepo.Create(context.Background(), c)
	}

	// Services por módulo
	clinicsSvc := clinics.NewService(clinicsRepo)
	petsSvc := pets.NewService(petsRepo, clinicsSvc)
	docsSvc := documents.NewService(docsRepo, petsSvc)
	petsSvc.AttachPurger(docsSvc) // cascade pet -> documents
	apptsSvc := appointments.NewService(apptsRepo, clinicsSvc, petsSvc)
	reportsSvc := reports.NewService(petsSvc, apptsSvc)
	dashboardSvc := dashboard.NewService(petsSvc, apptsSvc)

	// Rutas por módulo
	clinics.RegisterRoutes(r, clinicsSvc)
	pets.RegisterRoutes(r, petsSvc)
	appointments.RegisterRoutes(r, apptsSvc)
	documents.RegisterRoutes(r, docsSvc)
	reports.RegisterRoutes(r, reportsSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}
