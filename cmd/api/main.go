package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/peopleops-hr/attendance-backend-go/internal/config"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/shift"
	appHTTP "github.com/peopleops-hr/attendance-backend-go/internal/handler/http"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/peopleops-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peopleops-hr/attendance-backend-go/internal/service/attendance"
	leaveService "github.com/peopleops-hr/attendance-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	dayRepo := postgresql.NewDayRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	shiftResolver := shift.NewResolver(shiftRepo)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		dayRepo,
		sessionRepo,
		employeeRepo,
		shiftResolver,
		cfg.Attendance,
	)
	leaveSvc := leaveService.NewLeaveService(db, balanceRepo, requestRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	scheduler := cron.NewScheduler()
	reconcileJobs := cron.NewReconcileJobs(
		sessionRepo,
		dayRepo,
		employeeRepo,
		holidayRepo,
		balanceRepo,
		requestRepo,
		shiftResolver,
		attendanceSvc,
		cfg.Attendance,
	)
	reconcileJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		slog.Info("Server started", "addr", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	_ = server.Close()
}
