package app_test

import (
	"context"
	"net/http"

	"github.com/okian/prodsync/internal/adapters/remote"
	"github.com/okian/prodsync/internal/domain/model"
)

// fakeGateway implements app.Gateway in memory and records every write.
type fakeGateway struct {
	entities map[string]model.Entity
	products map[string]model.Product
	fieldDef model.FieldDefinition

	entityErr   map[string]error
	fieldDefErr error

	writes []fieldWrite

	pages     []model.EntityPage
	pageCalls []string
	pageErr   error

	regs        []model.WebhookRegistration
	listRegsErr error
	created     []model.WebhookDescriptor
	createErr   error
}

type fieldWrite struct {
	entityID string
	fieldID  string
	value    model.FieldValue
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		entities:  map[string]model.Entity{},
		products:  map[string]model.Product{},
		entityErr: map[string]error{},
	}
}

func (f *fakeGateway) GetEntity(_ context.Context, id string) (model.Entity, error) {
	if err := f.entityErr[id]; err != nil {
		return model.Entity{}, err
	}
	ent, ok := f.entities[id]
	if !ok {
		return model.Entity{}, &remote.Error{StatusCode: http.StatusNotFound, Message: "entity not found"}
	}
	return ent, nil
}

func (f *fakeGateway) GetProduct(_ context.Context, id string) (model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, &remote.Error{StatusCode: http.StatusNotFound, Message: "product not found"}
	}
	return p, nil
}

func (f *fakeGateway) GetFieldDefinition(_ context.Context, fieldID string) (model.FieldDefinition, error) {
	if f.fieldDefErr != nil {
		return model.FieldDefinition{}, f.fieldDefErr
	}
	return f.fieldDef, nil
}

func (f *fakeGateway) SetFieldValue(_ context.Context, entityID, fieldID string, value model.FieldValue) error {
	f.writes = append(f.writes, fieldWrite{entityID: entityID, fieldID: fieldID, value: value})
	return nil
}

func (f *fakeGateway) ListEntitiesPage(_ context.Context, pageSize int, cursor string) (model.EntityPage, error) {
	f.pageCalls = append(f.pageCalls, cursor)
	if f.pageErr != nil {
		return model.EntityPage{}, f.pageErr
	}
	if len(f.pages) == 0 {
		return model.EntityPage{}, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeGateway) ListWebhookRegistrations(_ context.Context) ([]model.WebhookRegistration, error) {
	if f.listRegsErr != nil {
		return nil, f.listRegsErr
	}
	return f.regs, nil
}

func (f *fakeGateway) CreateWebhookRegistration(_ context.Context, d model.WebhookDescriptor) (model.WebhookRegistration, error) {
	if f.createErr != nil {
		return model.WebhookRegistration{}, f.createErr
	}
	f.created = append(f.created, d)
	reg := model.WebhookRegistration{ID: "wh-new", URL: d.URL, Enabled: d.Enabled, Events: d.Events}
	f.regs = append(f.regs, reg)
	return reg, nil
}
