package queue

type TaskType string

const (
	// TaskTypeCompanyIndex upserts or removes one company in the search index.
	TaskTypeCompanyIndex TaskType = "company_index"
	// TaskTypeReindexAll rebuilds the search index from the companies table.
	TaskTypeReindexAll TaskType = "reindex_all"
	// TaskTypeNotification sends one email notification.
	TaskTypeNotification TaskType = "notification"
)

type NotificationKind string

const (
	NotificationQuoteSubmitted NotificationKind = "quote_submitted"
	NotificationClaimSubmitted NotificationKind = "claim_submitted"
	NotificationClaimApproved  NotificationKind = "claim_approved"
	NotificationClaimRejected  NotificationKind = "claim_rejected"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationQuoteSubmitted, NotificationClaimSubmitted, NotificationClaimApproved, NotificationClaimRejected:
		return true
	}
	return false
}

// Task is what services enqueue. TaskID is generated when empty and stays the
// same across retries.
type Task struct {
	TaskType  TaskType
	TaskID    string
	CompanyID *int64
	QuoteID   *int64
	ClaimID   *int64
	Kind      NotificationKind
	TraceID   *string
	Attempt   int
}

func CompanyIndexTask(companyID int64) Task {
	return Task{TaskType: TaskTypeCompanyIndex, CompanyID: &companyID}
}

func ReindexAllTask() Task {
	return Task{TaskType: TaskTypeReindexAll}
}

func QuoteNotificationTask(companyID, quoteID int64) Task {
	return Task{
		TaskType:  TaskTypeNotification,
		Kind:      NotificationQuoteSubmitted,
		CompanyID: &companyID,
		QuoteID:   &quoteID,
	}
}

func ClaimNotificationTask(kind NotificationKind, companyID, claimID int64) Task {
	return Task{
		TaskType:  TaskTypeNotification,
		Kind:      kind,
		CompanyID: &companyID,
		ClaimID:   &claimID,
	}
}
