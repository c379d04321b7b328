package models

// SystemStats is an administrator's headcount of the whole system. Deleted
// records are left out of the record counts but their audit entries count.
type SystemStats struct {
	Principals       int64
	Producers        int64
	Verifiers        int64
	Administrators   int64
	Projects         int64
	Records          int64
	PendingRecords   int64
	VerifiedRecords  int64
	CorruptedRecords int64
	AuditEntries     int64
}
