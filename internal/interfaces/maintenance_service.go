package interfaces

// MaintenanceService runs scheduled storage maintenance sweeps
type MaintenanceService interface {
	// Start registers the cron schedule and begins running sweeps
	Start() error

	// Stop halts the scheduler and waits for a running sweep to finish
	Stop() error

	// RunOnce executes one maintenance sweep immediately
	RunOnce() error
}
