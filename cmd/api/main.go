package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffhub-id/attendance-backend-go/internal/config"
	appHTTP "github.com/staffhub-id/attendance-backend-go/internal/handler/http"
	"github.com/staffhub-id/attendance-backend-go/internal/pkg/database"
	"github.com/staffhub-id/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffhub-id/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffhub-id/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/staffhub-id/attendance-backend-go/internal/service/employee"
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

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	cutoff, err := attendanceService.ParseCutoff(cfg.Attendance.OvertimeCutoff)
	if err != nil {
		log.Fatal("Invalid overtime cutoff:", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		postgresql.NewTransactionManager(db),
		attendanceRepo,
		employeeRepo,
		cutoff,
		cfg.Location(),
	)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		employeeHandler,
		cfg.App.FrontendURL,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
