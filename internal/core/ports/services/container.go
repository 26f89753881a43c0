package services

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	Ledger     LedgerSvc
	Allocation AllocationSvc
	Reporting  ReportingSvc
	Company    CompanySvc
	Auth       AuthSvc
}
