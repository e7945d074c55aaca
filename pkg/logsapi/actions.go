package logsapi

import "strings"

// ServiceNamespace is the target prefix used by the logs JSON protocol.
const ServiceNamespace = "Logs_20140328"

// TargetHeader carries the action identifier on each request.
const TargetHeader = "X-Amz-Target"

// Action identifies a supported operation.
type Action int

// Supported actions. ActionUnknown is the zero value and never dispatched.
const (
	ActionUnknown Action = iota
	ActionCreateLogGroup
	ActionCreateLogStream
	ActionDeleteLogGroup
	ActionDeleteLogStream
	ActionDescribeLogGroups
	ActionDescribeLogStreams
	ActionGetLogEvents
	ActionPutLogEvents
)

var actionNames = [...]string{
	ActionUnknown:            "Unknown",
	ActionCreateLogGroup:     "CreateLogGroup",
	ActionCreateLogStream:    "CreateLogStream",
	ActionDeleteLogGroup:     "DeleteLogGroup",
	ActionDeleteLogStream:    "DeleteLogStream",
	ActionDescribeLogGroups:  "DescribeLogGroups",
	ActionDescribeLogStreams: "DescribeLogStreams",
	ActionGetLogEvents:       "GetLogEvents",
	ActionPutLogEvents:       "PutLogEvents",
}

// String returns the operation name, e.g. "PutLogEvents".
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return actionNames[ActionUnknown]
	}
	return actionNames[a]
}

// Target returns the full action identifier, e.g. "Logs_20140328.PutLogEvents".
func (a Action) Target() string {
	return ServiceNamespace + "." + a.String()
}

// Actions lists every supported action.
func Actions() []Action {
	out := make([]Action, 0, len(actionNames)-1)
	for a := ActionCreateLogGroup; int(a) < len(actionNames); a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves an action identifier. Matching is exact and
// case-sensitive; anything else yields ActionUnknown.
func ParseAction(target string) Action {
	op, ok := strings.CutPrefix(target, ServiceNamespace+".")
	if !ok {
		return ActionUnknown
	}
	for a := ActionCreateLogGroup; int(a) < len(actionNames); a++ {
		if actionNames[a] == op {
			return a
		}
	}
	return ActionUnknown
}
