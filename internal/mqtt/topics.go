package mqtt

import "strings"

type topicKind int

const (
	topicUnknown topicKind = iota
	topicPosition
	topicDetection
	topicHazardReport
	topicHazardConfirm
	topicHazardGone
)

// Topics builds and parses the topic tree under one prefix:
//
//	<prefix>/vehicle/<id>/position
//	<prefix>/vehicle/<id>/alerts
//	<prefix>/detector/<id>/detection
//	<prefix>/hazards/<device>/report|confirm|gone
//	<prefix>/detections
type Topics struct {
	prefix string
}

func NewTopics(prefix string) Topics {
	return Topics{prefix: strings.Trim(prefix, "/")}
}

func (t Topics) Position() string   { return t.prefix + "/vehicle/+/position" }
func (t Topics) Detection() string  { return t.prefix + "/detector/+/detection" }
func (t Topics) Hazards() string    { return t.prefix + "/hazards/+/+" }
func (t Topics) Detections() string { return t.prefix + "/detections" }

func (t Topics) Alerts(vehicleID string) string {
	return t.prefix + "/vehicle/" + vehicleID + "/alerts"
}

// parse returns the kind of an inbound topic and the id segment in it.
func (t Topics) parse(topic string) (topicKind, string) {
	rest, ok := strings.CutPrefix(topic, t.prefix+"/")
	if !ok {
		return topicUnknown, ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] == "" {
		return topicUnknown, ""
	}
	id := parts[1]

	switch {
	case parts[0] == "vehicle" && parts[2] == "position":
		return topicPosition, id
	case parts[0] == "detector" && parts[2] == "detection":
		return topicDetection, id
	case parts[0] == "hazards" && parts[2] == "report":
		return topicHazardReport, id
	case parts[0] == "hazards" && parts[2] == "confirm":
		return topicHazardConfirm, id
	case parts[0] == "hazards" && parts[2] == "gone":
		return topicHazardGone, id
	}
	return topicUnknown, ""
}
