package main

import (
	"fmt"
	"net/http"

	"github.com/rotalabs/shift-backend-go/internal/config"
	appHTTP "github.com/rotalabs/shift-backend-go/internal/handler/http"
	"github.com/rotalabs/shift-backend-go/internal/pkg/cron"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
	"github.com/rotalabs/shift-backend-go/internal/pkg/jwt"
	"github.com/rotalabs/shift-backend-go/internal/repository/postgresql"
	attendanceService "github.com/rotalabs/shift-backend-go/internal/service/attendance"
	checkinService "github.com/rotalabs/shift-backend-go/internal/service/checkin"
	shiftService "github.com/rotalabs/shift-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	shiftTypeRepo := postgresql.NewShiftTypeRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	locationRepo := postgresql.NewShiftLocationRepository(db)
	scheduleRepo := postgresql.NewShiftScheduleRepository(db)
	eventRepo := postgresql.NewCheckinEventRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	shiftSvc := shiftService.NewShiftService(
		shiftTypeRepo,
		assignmentRepo,
		locationRepo,
		scheduleRepo,
		employeeRepo,
		cfg.HR.AllowMultipleShiftAssignments,
	)
	checkinSvc := checkinService.NewCheckinService(
		eventRepo,
		employeeRepo,
		locationRepo,
		shiftSvc,
		cfg.HR.GeolocationTracking,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		eventRepo,
		shiftTypeRepo,
		assignmentRepo,
		employeeRepo,
		holidayRepo,
		shiftSvc,
	)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	checkinHandler := appHTTP.NewCheckinHandler(checkinSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, shiftSvc, cfg.HR.AutoAttendanceInterval)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		shiftHandler,
		checkinHandler,
		attendanceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
