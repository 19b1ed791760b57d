package mqtt

import (
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-access/internal/events"
)

// TopicPrefix is the root of every access controller topic.
const TopicPrefix = "graylogic/access"

// Topics builds the topics for one site.
//
//	topics := mqtt.Topics{Site: "front-door"}
//	topics.Event(events.KindAccessGranted)
//	// Returns: "graylogic/access/front-door/event/access_granted"
type Topics struct {
	Site string
}

// Event returns the topic for events of the given kind.
func (t Topics) Event(kind events.Kind) string {
	return fmt.Sprintf("%s/%s/event/%s", TopicPrefix, t.site(), kind)
}

// Door returns the retained door state topic.
func (t Topics) Door() string {
	return fmt.Sprintf("%s/%s/door", TopicPrefix, t.site())
}

// Status returns the online/offline topic, also used for the LWT.
func (t Topics) Status() string {
	return fmt.Sprintf("%s/%s/status", TopicPrefix, t.site())
}

// site returns the site ID with characters that are special in MQTT
// topic names replaced.
func (t Topics) site() string {
	if t.Site == "" {
		return "default"
	}
	return topicReplacer.Replace(t.Site)
}

var topicReplacer = strings.NewReplacer("/", "_", "+", "_", "#", "_")
