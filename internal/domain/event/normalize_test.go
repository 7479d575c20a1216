package event_test

import (
	"testing"

	"github.com/okian/prodsync/internal/domain/event"
	. "github.com/smartystreets/goconvey/convey"
)

func ids(events []event.Canonical) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.EntityID
	}
	return out
}

func TestNormalizeEnvelopeShapes(t *testing.T) {
	Convey("Given the known batch envelope shapes", t, func() {
		Convey("When data is an array of sub-events", func() {
			body := []byte(`{"data":[
				{"type":"feature.updated","id":"F1"},
				{"type":"feature.updated","id":"F2"}
			]}`)
			events := event.Normalize(body)

			Convey("Then each element becomes one event, in order", func() {
				So(ids(events), ShouldResemble, []string{"F1", "F2"})
			})
		})

		Convey("When sub-events are nested under data.events", func() {
			body := []byte(`{"data":{"events":[
				{"type":"feature.created","id":"F3"},
				{"type":"feature.deleted","id":"F4"}
			]}}`)
			events := event.Normalize(body)

			Convey("Then the inner list is used", func() {
				So(ids(events), ShouldResemble, []string{"F3", "F4"})
			})
		})

		Convey("When data is a single object", func() {
			body := []byte(`{"data":{"eventType":"feature.updated","id":"F5"}}`)
			events := event.Normalize(body)

			Convey("Then it is treated as one sub-event", func() {
				So(ids(events), ShouldResemble, []string{"F5"})
				So(events[0].Kind, ShouldEqual, "feature.updated")
			})
		})

		Convey("When there is no data field at all", func() {
			body := []byte(`{"eventType":"feature.updated","id":"F6"}`)
			events := event.Normalize(body)

			Convey("Then the whole body is the sub-event", func() {
				So(ids(events), ShouldResemble, []string{"F6"})
			})
		})
	})
}

func TestNormalizeIdentifierExtraction(t *testing.T) {
	Convey("Given the per-sub-event extraction cascade", t, func() {
		Convey("When the event carries a feature URL instead of an id", func() {
			body := []byte(`{"type":"feature.updated","url":"https://svc.example.com/api/v1/features/6f1d2c3b4a5e6f7a8b9c"}`)
			events := event.Normalize(body)

			So(ids(events), ShouldResemble, []string{"6f1d2c3b4a5e6f7a8b9c"})
		})

		Convey("When the feature URL sits under the data container", func() {
			body := []byte(`{"data":{"type":"feature.updated","links":"https://svc.example.com/features/0123456789abcdef0123"}}`)
			events := event.Normalize(body)

			So(ids(events), ShouldResemble, []string{"0123456789abcdef0123"})
		})

		Convey("When a URL-ish string is too short to be a feature id", func() {
			body := []byte(`{"type":"feature.updated","url":"https://svc.example.com/features/abc123"}`)
			events := event.Normalize(body)

			So(events, ShouldBeEmpty)
		})

		Convey("When the event wraps a typed entity", func() {
			body := []byte(`{"type":"feature.updated","entity":{"type":"feature","id":"F1"}}`)
			events := event.Normalize(body)

			So(ids(events), ShouldResemble, []string{"F1"})
		})

		Convey("When the event carries a top-level entityId", func() {
			body := []byte(`{"type":"feature.moved","entityId":"F7"}`)
			events := event.Normalize(body)

			So(ids(events), ShouldResemble, []string{"F7"})
		})

		Convey("When the event is double-wrapped as entity.entity", func() {
			body := []byte(`{"type":"feature.updated","entity":{"entity":{"type":"feature","id":"F8"}}}`)
			events := event.Normalize(body)

			So(ids(events), ShouldResemble, []string{"F8"})
		})

		Convey("When the reference hides one level down under data", func() {
			body := []byte(`{"type":"feature.updated","data":{"entityId":"F9"}}`)
			events := event.Normalize(body)

			So(ids(events), ShouldResemble, []string{"F9"})
		})
	})
}

func TestNormalizeKindGate(t *testing.T) {
	Convey("Given the feature kind-prefix gate", t, func() {
		Convey("When a non-feature event carries a plain id", func() {
			body := []byte(`{"type":"release.updated","id":"R1"}`)
			events := event.Normalize(body)

			Convey("Then no event is emitted", func() {
				So(events, ShouldBeEmpty)
			})
		})

		Convey("When an old payload has no kind but a feature-typed node", func() {
			body := []byte(`{"entity":{"type":"feature","id":"F1"}}`)
			events := event.Normalize(body)

			Convey("Then the deep walk rescues it despite the missing kind", func() {
				So(ids(events), ShouldResemble, []string{"F1"})
				So(events[0].Kind, ShouldEqual, "")
			})
		})

		Convey("When a non-feature event merely mentions features deep inside", func() {
			body := []byte(`{"type":"release.updated","payload":{"nested":{"entityType":"feature","entityId":"F2"}}}`)
			events := event.Normalize(body)

			Convey("Then the deep walk still emits it", func() {
				So(ids(events), ShouldResemble, []string{"F2"})
			})
		})

		Convey("When nothing in the payload is feature-shaped", func() {
			body := []byte(`{"type":"release.updated","payload":{"id":"R1","name":"Q3"}}`)
			events := event.Normalize(body)

			So(events, ShouldBeEmpty)
		})
	})
}

func TestNormalizeDeepWalkDeterminism(t *testing.T) {
	Convey("Given a payload with several feature-typed nodes", t, func() {
		body := []byte(`{
			"alpha": {"type":"feature","id":"FA"},
			"beta":  {"type":"feature","id":"FB"}
		}`)

		Convey("Then repeated runs pick the same node (sorted key order)", func() {
			for i := 0; i < 20; i++ {
				events := event.Normalize(body)
				So(ids(events), ShouldResemble, []string{"FA"})
			}
		})
	})
}

func TestNormalizeMalformedBodies(t *testing.T) {
	Convey("Given malformed or unrecognizable bodies", t, func() {
		Convey("Then none of them produce events or panic", func() {
			So(event.Normalize([]byte(`not json at all`)), ShouldBeEmpty)
			So(event.Normalize([]byte(``)), ShouldBeEmpty)
			So(event.Normalize([]byte(`42`)), ShouldBeEmpty)
			So(event.Normalize([]byte(`"feature.updated"`)), ShouldBeEmpty)
			So(event.Normalize([]byte(`[1,2,3]`)), ShouldBeEmpty)
			So(event.Normalize([]byte(`{"data":[null,17,"x"]}`)), ShouldBeEmpty)
		})
	})
}

func TestNormalizeBatchScenario(t *testing.T) {
	Convey("Given a mixed batch with one feature event and one unrelated event", t, func() {
		body := []byte(`{"data":[
			{"type":"feature.updated","entity":{"type":"feature","id":"F1"}},
			{"type":"other.event"}
		]}`)

		Convey("When normalized", func() {
			events := event.Normalize(body)

			Convey("Then exactly one canonical event for F1 comes out", func() {
				So(events, ShouldHaveLength, 1)
				So(events[0].EntityID, ShouldEqual, "F1")
				So(events[0].Kind, ShouldEqual, "feature.updated")
			})
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Given the diagnostic describer", t, func() {
		Convey("When the body is an object", func() {
			keys, kind := event.Describe([]byte(`{"zulu":1,"alpha":2,"type":"release.created"}`))

			Convey("Then keys come back sorted with the detected kind", func() {
				So(keys, ShouldResemble, []string{"alpha", "type", "zulu"})
				So(kind, ShouldEqual, "release.created")
			})
		})

		Convey("When the body is not an object", func() {
			keys, kind := event.Describe([]byte(`[1,2]`))
			So(keys, ShouldBeNil)
			So(kind, ShouldEqual, "")
		})
	})
}
