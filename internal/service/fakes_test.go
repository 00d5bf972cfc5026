package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/internal/repository"
)

// The fakes below back the service tests with in-memory maps. They
// mirror the repository contracts: lookups scoped by tenant, nil for
// not found, and soft deletes modeled by dropping the row.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func pageOf[T any](items []T, pageable repository.Pageable) repository.Page[T] {
	return repository.NewPage(items, pageable, int64(len(items)))
}

type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeCustomerStore struct {
	customers map[uuid.UUID]*model.Customer
	lockCalls int
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: make(map[uuid.UUID]*model.Customer)}
}

func (f *fakeCustomerStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerStore) FindByIDForUpdate(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	f.lockCalls++
	return f.FindByID(ctx, tenantID, id)
}

func (f *fakeCustomerStore) FindByCode(ctx context.Context, tenantID, code string) (*model.Customer, error) {
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerStore) FindByEmail(ctx context.Context, tenantID, email string) (*model.Customer, error) {
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerStore) FindByPhone(ctx context.Context, tenantID, phone string) (*model.Customer, error) {
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerStore) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	c, err := f.FindByCode(ctx, tenantID, code)
	return c != nil, err
}

func (f *fakeCustomerStore) FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Customer], error) {
	var items []model.Customer
	for _, c := range f.customers {
		if c.TenantID == tenantID {
			items = append(items, *c)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeCustomerStore) FindPageByTier(ctx context.Context, tenantID string, tierID uuid.UUID, pageable repository.Pageable) (repository.Page[model.Customer], error) {
	var items []model.Customer
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.LoyaltyTierID != nil && *c.LoyaltyTierID == tierID {
			items = append(items, *c)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeCustomerStore) Create(ctx context.Context, customer *model.Customer) error {
	ensureID(&customer.ID)
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerStore) Save(ctx context.Context, customer *model.Customer) error {
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerStore) Delete(ctx context.Context, customer *model.Customer) error {
	delete(f.customers, customer.ID)
	return nil
}

type fakeTierStore struct {
	tiers map[uuid.UUID]*model.LoyaltyTier
}

func newFakeTierStore() *fakeTierStore {
	return &fakeTierStore{tiers: make(map[uuid.UUID]*model.LoyaltyTier)}
}

func (f *fakeTierStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTier, error) {
	t, ok := f.tiers[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTierStore) FindByCode(ctx context.Context, tenantID, code string) (*model.LoyaltyTier, error) {
	for _, t := range f.tiers {
		if t.TenantID == tenantID && t.Code == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTierStore) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	t, err := f.FindByCode(ctx, tenantID, code)
	return t != nil, err
}

func (f *fakeTierStore) FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.LoyaltyTier], error) {
	items, _ := f.FindAllOrdered(ctx, tenantID)
	return pageOf(items, pageable), nil
}

func (f *fakeTierStore) FindAllOrdered(ctx context.Context, tenantID string) ([]model.LoyaltyTier, error) {
	var items []model.LoyaltyTier
	for _, t := range f.tiers {
		if t.TenantID == tenantID {
			items = append(items, *t)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MinPoints < items[j].MinPoints })
	return items, nil
}

// FindTierForPoints matches the SQL contract: highest threshold not
// above totalPoints, ties broken by lowest code, inactive tiers skipped.
func (f *fakeTierStore) FindTierForPoints(ctx context.Context, tenantID string, totalPoints int) (*model.LoyaltyTier, error) {
	var best *model.LoyaltyTier
	for _, t := range f.tiers {
		if t.TenantID != tenantID || !t.IsActive || t.MinPoints > totalPoints {
			continue
		}
		if best == nil || t.MinPoints > best.MinPoints ||
			(t.MinPoints == best.MinPoints && t.Code < best.Code) {
			best = t
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeTierStore) Create(ctx context.Context, tier *model.LoyaltyTier) error {
	ensureID(&tier.ID)
	cp := *tier
	f.tiers[tier.ID] = &cp
	return nil
}

func (f *fakeTierStore) Save(ctx context.Context, tier *model.LoyaltyTier) error {
	cp := *tier
	f.tiers[tier.ID] = &cp
	return nil
}

func (f *fakeTierStore) Delete(ctx context.Context, tier *model.LoyaltyTier) error {
	delete(f.tiers, tier.ID)
	return nil
}

type fakeLedgerStore struct {
	entries []*model.LoyaltyTransaction
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{}
}

func (f *fakeLedgerStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTransaction, error) {
	for _, e := range f.entries {
		if e.TenantID == tenantID && e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerStore) FindPageByCustomer(ctx context.Context, tenantID string, customerID uuid.UUID, pageable repository.Pageable) (repository.Page[model.LoyaltyTransaction], error) {
	var items []model.LoyaltyTransaction
	for _, e := range f.entries {
		if e.TenantID == tenantID && e.CustomerID == customerID {
			items = append(items, *e)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeLedgerStore) FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.LoyaltyTransaction], error) {
	var items []model.LoyaltyTransaction
	for _, e := range f.entries {
		if e.TenantID == tenantID {
			items = append(items, *e)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeLedgerStore) Create(ctx context.Context, txn *model.LoyaltyTransaction) error {
	ensureID(&txn.ID)
	cp := *txn
	f.entries = append(f.entries, &cp)
	return nil
}

type fakeTenantStore struct {
	tenants map[uuid.UUID]*model.Tenant
}

func newFakeTenantStore() *fakeTenantStore {
	return &fakeTenantStore{tenants: make(map[uuid.UUID]*model.Tenant)}
}

func (f *fakeTenantStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTenantStore) FindByCode(ctx context.Context, code string) (*model.Tenant, error) {
	for _, t := range f.tenants {
		if t.Code == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantStore) ExistsByCode(ctx context.Context, code string) (bool, error) {
	t, err := f.FindByCode(ctx, code)
	return t != nil, err
}

func (f *fakeTenantStore) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	for _, t := range f.tenants {
		if t.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTenantStore) FindPage(ctx context.Context, pageable repository.Pageable) (repository.Page[model.Tenant], error) {
	var items []model.Tenant
	for _, t := range f.tenants {
		items = append(items, *t)
	}
	return pageOf(items, pageable), nil
}

func (f *fakeTenantStore) Create(ctx context.Context, tenant *model.Tenant) error {
	ensureID(&tenant.ID)
	cp := *tenant
	f.tenants[tenant.ID] = &cp
	return nil
}

func (f *fakeTenantStore) Save(ctx context.Context, tenant *model.Tenant) error {
	cp := *tenant
	f.tenants[tenant.ID] = &cp
	return nil
}

func (f *fakeTenantStore) Delete(ctx context.Context, tenant *model.Tenant) error {
	delete(f.tenants, tenant.ID)
	return nil
}

type fakePlanStore struct {
	plans map[uuid.UUID]*model.SubscriptionPlan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: make(map[uuid.UUID]*model.SubscriptionPlan)}
}

func (f *fakePlanStore) FindByID(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanStore) FindByCode(ctx context.Context, code string) (*model.SubscriptionPlan, error) {
	for _, p := range f.plans {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlanStore) ExistsByCode(ctx context.Context, code string) (bool, error) {
	p, err := f.FindByCode(ctx, code)
	return p != nil, err
}

func (f *fakePlanStore) FindPage(ctx context.Context, pageable repository.Pageable) (repository.Page[model.SubscriptionPlan], error) {
	items, _ := f.FindAllOrdered(ctx)
	return pageOf(items, pageable), nil
}

func (f *fakePlanStore) FindAllOrdered(ctx context.Context) ([]model.SubscriptionPlan, error) {
	var items []model.SubscriptionPlan
	for _, p := range f.plans {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DisplayOrder < items[j].DisplayOrder })
	return items, nil
}

func (f *fakePlanStore) Create(ctx context.Context, plan *model.SubscriptionPlan) error {
	ensureID(&plan.ID)
	cp := *plan
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakePlanStore) Save(ctx context.Context, plan *model.SubscriptionPlan) error {
	cp := *plan
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakePlanStore) Delete(ctx context.Context, plan *model.SubscriptionPlan) error {
	delete(f.plans, plan.ID)
	return nil
}

type fakeSettingsStore struct {
	settings map[uuid.UUID]*model.Settings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: make(map[uuid.UUID]*model.Settings)}
}

func (f *fakeSettingsStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Settings, error) {
	s, ok := f.settings[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettingsStore) FindByKey(ctx context.Context, tenantID, settingKey string) (*model.Settings, error) {
	for _, s := range f.settings {
		if s.TenantID == tenantID && s.SettingKey == settingKey {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSettingsStore) FindByCategory(ctx context.Context, tenantID, category string) ([]model.Settings, error) {
	var items []model.Settings
	for _, s := range f.settings {
		if s.TenantID == tenantID && s.Category == category {
			items = append(items, *s)
		}
	}
	return items, nil
}

func (f *fakeSettingsStore) FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Settings], error) {
	var items []model.Settings
	for _, s := range f.settings {
		if s.TenantID == tenantID {
			items = append(items, *s)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeSettingsStore) Create(ctx context.Context, setting *model.Settings) error {
	ensureID(&setting.ID)
	cp := *setting
	f.settings[setting.ID] = &cp
	return nil
}

func (f *fakeSettingsStore) Save(ctx context.Context, setting *model.Settings) error {
	cp := *setting
	f.settings[setting.ID] = &cp
	return nil
}

func (f *fakeSettingsStore) Delete(ctx context.Context, setting *model.Settings) error {
	delete(f.settings, setting.ID)
	return nil
}

type fakeStoreStore struct {
	stores map[uuid.UUID]*model.Store
}

func newFakeStoreStore() *fakeStoreStore {
	return &fakeStoreStore{stores: make(map[uuid.UUID]*model.Store)}
}

func (f *fakeStoreStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Store, error) {
	s, ok := f.stores[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStoreStore) FindByCode(ctx context.Context, tenantID, code string) (*model.Store, error) {
	for _, s := range f.stores {
		if s.TenantID == tenantID && s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreStore) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	s, err := f.FindByCode(ctx, tenantID, code)
	return s != nil, err
}

func (f *fakeStoreStore) FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Store], error) {
	var items []model.Store
	for _, s := range f.stores {
		if s.TenantID == tenantID {
			items = append(items, *s)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeStoreStore) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	for _, s := range f.stores {
		if s.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStoreStore) Create(ctx context.Context, store *model.Store) error {
	ensureID(&store.ID)
	cp := *store
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreStore) Save(ctx context.Context, store *model.Store) error {
	cp := *store
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreStore) Delete(ctx context.Context, store *model.Store) error {
	delete(f.stores, store.ID)
	return nil
}

type fakeOverrideStore struct {
	overrides map[uuid.UUID]*model.StorePriceOverride
}

func newFakeOverrideStore() *fakeOverrideStore {
	return &fakeOverrideStore{overrides: make(map[uuid.UUID]*model.StorePriceOverride)}
}

func (f *fakeOverrideStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.StorePriceOverride, error) {
	o, ok := f.overrides[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOverrideStore) ExistsForStoreProduct(ctx context.Context, tenantID string, storeID, productID uuid.UUID) (bool, error) {
	for _, o := range f.overrides {
		if o.TenantID == tenantID && o.StoreID == storeID && o.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOverrideStore) FindPageByStore(ctx context.Context, tenantID string, storeID uuid.UUID, pageable repository.Pageable) (repository.Page[model.StorePriceOverride], error) {
	var items []model.StorePriceOverride
	for _, o := range f.overrides {
		if o.TenantID == tenantID && o.StoreID == storeID {
			items = append(items, *o)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeOverrideStore) FindPageByProduct(ctx context.Context, tenantID string, productID uuid.UUID, pageable repository.Pageable) (repository.Page[model.StorePriceOverride], error) {
	var items []model.StorePriceOverride
	for _, o := range f.overrides {
		if o.TenantID == tenantID && o.ProductID == productID {
			items = append(items, *o)
		}
	}
	return pageOf(items, pageable), nil
}

func (f *fakeOverrideStore) FindActiveOverride(ctx context.Context, tenantID string, storeID, productID uuid.UUID, at time.Time) (*model.StorePriceOverride, error) {
	for _, o := range f.overrides {
		if o.TenantID == tenantID && o.StoreID == storeID && o.ProductID == productID && o.IsEffective(at) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOverrideStore) FindAllActiveForStore(ctx context.Context, tenantID string, storeID uuid.UUID, at time.Time) ([]model.StorePriceOverride, error) {
	var items []model.StorePriceOverride
	for _, o := range f.overrides {
		if o.TenantID == tenantID && o.StoreID == storeID && o.IsEffective(at) {
			items = append(items, *o)
		}
	}
	return items, nil
}

func (f *fakeOverrideStore) Create(ctx context.Context, override *model.StorePriceOverride) error {
	ensureID(&override.ID)
	cp := *override
	f.overrides[override.ID] = &cp
	return nil
}

func (f *fakeOverrideStore) Save(ctx context.Context, override *model.StorePriceOverride) error {
	cp := *override
	f.overrides[override.ID] = &cp
	return nil
}

func (f *fakeOverrideStore) Delete(ctx context.Context, override *model.StorePriceOverride) error {
	delete(f.overrides, override.ID)
	return nil
}
