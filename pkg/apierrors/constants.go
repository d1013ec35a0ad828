package apierrors

const (
	MsgFailListActivities     = "errorListActivities"
	MsgFailCreateActivity     = "failCreateActivity"
	MsgFailUpdateActivity     = "failUpdateActivity"
	MsgFailDeleteActivity     = "failDeleteActivity"
	MsgFailGetActivity        = "failGetActivity"
	MsgFailNextActivity       = "failNextActivity"
	MsgFailStartActivity      = "failStartActivity"
	MsgFailCompleteActivity   = "failCompleteActivity"
	MsgFailListHistory        = "failListHistory"
	MsgInvalidActivityID      = "invalidActivityID"
	MsgInvalidActivityPayload = "invalidActivityPayload"
	MsgInvalidCompletePayload = "invalidCompletePayload"
	MsgActivityNotFound       = "activityNotFound"
	MsgCategoryNotFound       = "categoryNotFound"
	MsgScheduleNotFound       = "scheduleNotFound"
	MsgQuotaExceeded          = "quotaExceeded"
	MsgNoEligibleActivity     = "noEligibleActivity"
	MsgHistoryEmpty           = "historyEmpty"
	MsgHistoryEmptyHint       = "historyEmptyHint"
	MsgUnauthorized           = "unauthorized"
)
