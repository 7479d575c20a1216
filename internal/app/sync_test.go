package app_test

import (
	"context"
	"testing"

	"github.com/okian/prodsync/internal/app"
	"github.com/okian/prodsync/internal/domain/field"
	"github.com/okian/prodsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSyncTextMode(t *testing.T) {
	Convey("Given entity F1 under product Atlas and a text-mode field", t, func() {
		gw := newFakeGateway()
		gw.entities["F1"] = model.Entity{ID: "F1", Product: &model.Ref{ID: "P1"}}
		gw.products["P1"] = model.Product{ID: "P1", Name: "Atlas"}
		svc := app.New(gw, "fld-1", field.ModeText)

		Convey("When the entity is synced", func() {
			svc.SyncEntity(context.Background(), "F1")

			Convey("Then one write carries the literal product name", func() {
				So(gw.writes, ShouldHaveLength, 1)
				So(gw.writes[0], ShouldResemble, fieldWrite{
					entityID: "F1",
					fieldID:  "fld-1",
					value:    model.FieldValue{Text: "Atlas"},
				})
			})
		})

		Convey("When the entity is synced twice with no remote change", func() {
			svc.SyncEntity(context.Background(), "F1")
			svc.SyncEntity(context.Background(), "F1")

			Convey("Then the second write is identical to the first", func() {
				So(gw.writes, ShouldHaveLength, 2)
				So(gw.writes[1], ShouldResemble, gw.writes[0])
			})
		})
	})
}

func TestSyncEnumeratedMode(t *testing.T) {
	Convey("Given entity F2 under product Nimbus and an enumerated field", t, func() {
		gw := newFakeGateway()
		gw.entities["F2"] = model.Entity{ID: "F2", Parent: &model.Parent{Product: &model.Ref{ID: "P2"}}}
		gw.products["P2"] = model.Product{ID: "P2", Name: "Nimbus"}
		gw.fieldDef = model.FieldDefinition{
			ID: "fld-1",
			Options: []model.Option{
				{ID: "o1", Label: "Nimbus"},
				{ID: "o2", Label: "Orbit"},
			},
		}
		svc := app.New(gw, "fld-1", field.ModeEnumerated)

		Convey("When the entity is synced", func() {
			svc.SyncEntity(context.Background(), "F2")

			Convey("Then one write references the matching option", func() {
				So(gw.writes, ShouldHaveLength, 1)
				So(gw.writes[0].value, ShouldResemble, model.FieldValue{OptionID: "o1"})
			})
		})
	})
}

func TestSyncSkipConditions(t *testing.T) {
	Convey("Given the designed skip conditions", t, func() {
		Convey("When the entity has no parent reference at all", func() {
			gw := newFakeGateway()
			gw.entities["F3"] = model.Entity{ID: "F3"}
			svc := app.New(gw, "fld-1", field.ModeText)

			svc.SyncEntity(context.Background(), "F3")

			Convey("Then no write happens and nothing blows up", func() {
				So(gw.writes, ShouldBeEmpty)
			})
		})

		Convey("When the parent product has no name", func() {
			gw := newFakeGateway()
			gw.entities["F5"] = model.Entity{ID: "F5", Product: &model.Ref{ID: "P5"}}
			gw.products["P5"] = model.Product{ID: "P5"}
			svc := app.New(gw, "fld-1", field.ModeText)

			svc.SyncEntity(context.Background(), "F5")

			So(gw.writes, ShouldBeEmpty)
		})
	})
}

func TestSyncNoMatchingOption(t *testing.T) {
	Convey("Given a product name absent from the enumerated option set", t, func() {
		gw := newFakeGateway()
		gw.entities["F4"] = model.Entity{ID: "F4", Product: &model.Ref{ID: "P4"}}
		gw.products["P4"] = model.Product{ID: "P4", Name: "Zephyr"}
		gw.fieldDef = model.FieldDefinition{
			ID:      "fld-1",
			Options: []model.Option{{ID: "o1", Label: "Nimbus"}},
		}
		svc := app.New(gw, "fld-1", field.ModeEnumerated)

		Convey("When the entity is synced", func() {
			svc.SyncEntity(context.Background(), "F4")

			Convey("Then the entity is left untouched", func() {
				So(gw.writes, ShouldBeEmpty)
			})
		})
	})
}

func TestProcessNotification(t *testing.T) {
	Convey("Given a batch touching one broken and one healthy entity", t, func() {
		gw := newFakeGateway()
		gw.entityErr["F-err"] = &testError{"boom"}
		gw.entities["F1"] = model.Entity{ID: "F1", Product: &model.Ref{ID: "P1"}}
		gw.products["P1"] = model.Product{ID: "P1", Name: "Atlas"}
		svc := app.New(gw, "fld-1", field.ModeText)

		body := []byte(`{"data":[
			{"type":"feature.updated","id":"F-err"},
			{"type":"feature.updated","id":"F1"}
		]}`)

		Convey("When the notification is processed", func() {
			n := svc.ProcessNotification(context.Background(), body)

			Convey("Then the broken entity does not abort its sibling", func() {
				So(n, ShouldEqual, 2)
				So(gw.writes, ShouldHaveLength, 1)
				So(gw.writes[0].entityID, ShouldEqual, "F1")
			})
		})
	})

	Convey("Given an unrecognizable notification", t, func() {
		gw := newFakeGateway()
		svc := app.New(gw, "fld-1", field.ModeText, app.WithPayloadDebug(true, 64))

		Convey("When it is processed", func() {
			n := svc.ProcessNotification(context.Background(), []byte(`{"ping":"pong"}`))

			Convey("Then nothing is synced and nothing fails", func() {
				So(n, ShouldEqual, 0)
				So(gw.writes, ShouldBeEmpty)
			})
		})
	})
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
