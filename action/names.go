package action

// Service and topic name derivation: a pure string-join rule over the
// action's base name, generalized from the
// `fmt.Sprintf("%s/goal", as.action)` ROS1 suffixes to the five ROS2
// rcl_action `_action/...` names.
const (
	goalServiceSuffix   = "/_action/send_goal"
	cancelServiceSuffix = "/_action/cancel_goal"
	resultServiceSuffix = "/_action/get_result"
	feedbackTopicSuffix = "/_action/feedback"
	statusTopicSuffix   = "/_action/status"
)

func goalServiceName(action string) string   { return action + goalServiceSuffix }
func cancelServiceName(action string) string { return action + cancelServiceSuffix }
func resultServiceName(action string) string { return action + resultServiceSuffix }
func feedbackTopicName(action string) string { return action + feedbackTopicSuffix }
func statusTopicName(action string) string   { return action + statusTopicSuffix }
