package metrics

const Namespace = "pixelpet"

const (
	SubsystemHTTP       = "http"
	SubsystemEvents     = "events"
	SubsystemPet        = "pet"
	SubsystemInvestment = "investment"
	SubsystemChallenge  = "challenge"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelAction   = "action"
	LabelResult   = "result"
	LabelCommand  = "command"
	LabelMood     = "mood"
	LabelOutcome  = "outcome"
	LabelSettled  = "settled"
	LabelChanged  = "changed"
	LabelDuration = "duration_hours"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	PathUnmatched = "unmatched"
)

const (
	LogMsgUnexpectedPayload = "Event payload has an unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
