// leavectl is a small operational tool for inspecting leave state: balance
// summaries, resolved approver sets and the dashboard aggregates.
//
// Usage:
//
//	leavectl -employee 42 summary
//	leavectl -employee 42 approvers
//	leavectl -year 2026 dashboard
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kadrolabs/hr-backend-go/internal/config"
	"github.com/kadrolabs/hr-backend-go/internal/pkg/database"
	"github.com/kadrolabs/hr-backend-go/internal/repository/postgresql"
	dashboardService "github.com/kadrolabs/hr-backend-go/internal/service/dashboard"
	"github.com/kadrolabs/hr-backend-go/internal/service/leaverule"
)

func main() {
	employeeID := flag.Int64("employee", 0, "employee id")
	year := flag.Int("year", time.Now().Year(), "year for dashboard aggregates")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: leavectl [-employee ID] [-year YYYY] summary|approvers|dashboard")
		os.Exit(2)
	}
	action := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	rules := leaverule.NewEngine(employeeRepo, leaveRequestRepo, logger)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	ctx := context.Background()

	switch action {
	case "summary":
		if *employeeID == 0 {
			log.Fatal("-employee is required for summary")
		}
		summary, err := rules.Summary(ctx, *employeeID, time.Now())
		if err != nil {
			log.Fatalf("summary failed: %v", err)
		}
		fmt.Printf("employee %d, year %d\n", summary.EmployeeID, summary.Year)
		fmt.Printf("  entitlement: %d\n", summary.Entitlement)
		fmt.Printf("  consumed:    %d\n", summary.Consumed)
		fmt.Printf("  pending:     %d\n", summary.Pending)
		fmt.Printf("  remaining:   %d\n", summary.Remaining)
	case "approvers":
		if *employeeID == 0 {
			log.Fatal("-employee is required for approvers")
		}
		approvers, err := rules.ResolveApprovers(ctx, *employeeID)
		if err != nil {
			log.Fatalf("approver resolution failed: %v", err)
		}
		if len(approvers) == 0 {
			fmt.Println("no approvers found")
			return
		}
		for _, a := range approvers {
			fmt.Printf("%d\t%s\t%s (%s, rank %d)\n", a.ID, a.FullName, a.PositionTitle, a.DepartmentName, a.LevelRank)
		}
	case "dashboard":
		overview, err := dashboardSvc.GetOverview(ctx, *year)
		if err != nil {
			log.Fatalf("dashboard failed: %v", err)
		}
		fmt.Printf("year %d: %d employees (%d active), %d pending requests, avg service %s years\n",
			overview.Year,
			overview.Headline.TotalEmployees,
			overview.Headline.ActiveEmployees,
			overview.Headline.PendingRequests,
			overview.Headline.AverageServiceYears.String())
		for _, d := range overview.ByDepartment {
			fmt.Printf("  %-24s %d\n", d.DepartmentName, d.Headcount)
		}
		for _, lt := range overview.LeaveByType {
			fmt.Printf("  %-24s %d days over %d requests\n", lt.LeaveType, lt.TotalDays, lt.Requests)
		}
	default:
		log.Fatalf("unsupported action %q", action)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
