package flow

import (
	"context"
	"testing"

	"farmmarket-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records writes and serves canned reads.
type fakeStore struct {
	products        map[int64]*entity.Product
	underPrice      []*entity.Product
	lastMaxPrice    *float64
	history         []*entity.OrderHistory
	ratings         []*entity.ProductRating
	createdProducts []*entity.Product
	sentMessages    []*entity.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: map[int64]*entity.Product{}}
}

func (s *fakeStore) ProductByCode(ctx context.Context, code int64) (*entity.Product, error) {
	return s.products[code], nil
}

func (s *fakeStore) ProductsUnderPrice(ctx context.Context, maxPrice *float64) ([]*entity.Product, error) {
	s.lastMaxPrice = maxPrice
	return s.underPrice, nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, product *entity.Product) error {
	product.Code = int64(len(s.createdProducts)) + 1
	s.createdProducts = append(s.createdProducts, product)
	return nil
}

func (s *fakeStore) OrderHistory(ctx context.Context, buyerId uuid.UUID) ([]*entity.OrderHistory, error) {
	return s.history, nil
}

func (s *fakeStore) FarmerRatings(ctx context.Context, farmerId uuid.UUID) ([]*entity.ProductRating, error) {
	return s.ratings, nil
}

func (s *fakeStore) SendMessage(ctx context.Context, message *entity.Message) error {
	s.sentMessages = append(s.sentMessages, message)
	return nil
}

func farmerConv(message string, data entity.SessionData) *Conversation {
	id := uuid.New()
	return &Conversation{
		UserId:  id,
		Profile: &entity.Profile{Id: id, FullName: "Asha", IsFarmer: true},
		Message: message,
		Data:    data,
	}
}

func buyerConv(message string, data entity.SessionData) *Conversation {
	id := uuid.New()
	return &Conversation{
		UserId:  id,
		Profile: &entity.Profile{Id: id, FullName: "Ravi"},
		Message: message,
		Data:    data,
	}
}

func TestListingFlowCollectsFieldsInOrder(t *testing.T) {
	store := newFakeStore()
	h := NewListingHandler(store)
	ctx := context.Background()

	data := entity.SessionData{}

	// Turn 0: start the flow.
	res, err := h.Handle(ctx, farmerConv("I want to add product", data))
	require.NoError(t, err)
	data.Apply(res.Patch)
	assert.Equal(t, entity.FlowProductListing, data.CurrentFlow)
	require.NotNil(t, data.ProductDraft)
	assert.Equal(t, entity.ListingStageName, data.ProductDraft.Stage)

	// Turn 1: raw answer becomes the name.
	res, err = h.Handle(ctx, farmerConv("Tomatoes", data))
	require.NoError(t, err)
	data.Apply(res.Patch)
	assert.Equal(t, "Tomatoes", data.ProductDraft.Name)
	assert.Equal(t, entity.ListingStageCategory, data.ProductDraft.Stage)

	// Turn 2: category.
	res, err = h.Handle(ctx, farmerConv("vegetables", data))
	require.NoError(t, err)
	data.Apply(res.Patch)
	assert.Equal(t, "vegetables", data.ProductDraft.Category)
	assert.Equal(t, entity.ListingStagePrice, data.ProductDraft.Stage)
	assert.Contains(t, res.Reply, "price")
}

func TestListingFlowCommitsProduct(t *testing.T) {
	store := newFakeStore()
	h := NewListingHandler(store)
	ctx := context.Background()

	data := entity.SessionData{}
	answers := []string{"add product", "Tomatoes", "vegetables", "40", "100", "kg", "Nashik", "skip"}
	for _, msg := range answers {
		res, err := h.Handle(ctx, farmerConv(msg, data))
		require.NoError(t, err)
		data.Apply(res.Patch)
	}

	require.Len(t, store.createdProducts, 1)
	p := store.createdProducts[0]
	assert.Equal(t, "Tomatoes", p.Name)
	assert.Equal(t, "vegetables", p.Category)
	assert.Equal(t, 40.0, p.Price)
	assert.Equal(t, 100, p.Quantity)
	assert.Equal(t, "kg", p.Unit)
	assert.Equal(t, "Nashik", p.Location)
	assert.Nil(t, p.HarvestDate)

	// Draft and flow marker are gone once the product is in.
	assert.Empty(t, data.CurrentFlow)
	assert.Nil(t, data.ProductDraft)
}

func TestListingFlowRepromptsOnBadNumber(t *testing.T) {
	store := newFakeStore()
	h := NewListingHandler(store)
	ctx := context.Background()

	data := entity.SessionData{
		CurrentFlow: entity.FlowProductListing,
		ProductDraft: &entity.ProductDraft{
			Stage: entity.ListingStagePrice, Name: "Tomatoes", Category: "vegetables",
		},
	}

	res, err := h.Handle(ctx, farmerConv("cheap", data))
	require.NoError(t, err)
	assert.True(t, res.Patch.IsZero(), "bad input must not advance the flow")
	assert.Contains(t, res.Reply, "number")
}

func TestListingRejectsBuyer(t *testing.T) {
	h := NewListingHandler(newFakeStore())

	res, err := h.Handle(context.Background(), buyerConv("add product", entity.SessionData{}))
	require.NoError(t, err)
	assert.True(t, res.Patch.IsZero())
	assert.Contains(t, res.Reply, "farmers")
}

func TestSearchSetsMaxPriceAndQueries(t *testing.T) {
	store := newFakeStore()
	store.underPrice = []*entity.Product{
		{Code: 1, Name: "Tomatoes", Price: 40, Unit: "kg", Location: "Nashik"},
		{Code: 2, Name: "Onions", Price: 45, Unit: "kg", Location: "Pune"},
	}
	h := NewSearchHandler(store)

	res, err := h.Handle(context.Background(), buyerConv("show products under 50", entity.SessionData{}))
	require.NoError(t, err)

	require.NotNil(t, res.Patch.SearchParams)
	require.NotNil(t, res.Patch.SearchParams.MaxPrice)
	assert.Equal(t, 50.0, *res.Patch.SearchParams.MaxPrice)

	require.NotNil(t, store.lastMaxPrice)
	assert.Equal(t, 50.0, *store.lastMaxPrice)

	assert.Contains(t, res.Reply, "#1 Tomatoes (₹40/kg) - Nashik")
	assert.Contains(t, res.Reply, "#2 Onions (₹45/kg) - Pune")
}

func TestSearchReusesPersistedMaxPrice(t *testing.T) {
	store := newFakeStore()
	h := NewSearchHandler(store)

	max := 25.0
	data := entity.SessionData{SearchParams: &entity.SearchParams{MaxPrice: &max}}

	res, err := h.Handle(context.Background(), buyerConv("show products", data))
	require.NoError(t, err)

	require.NotNil(t, store.lastMaxPrice)
	assert.Equal(t, 25.0, *store.lastMaxPrice)
	assert.Contains(t, res.Reply, "No products found under ₹25.")
}

func TestNegotiationSeedsFromProductCode(t *testing.T) {
	store := newFakeStore()
	sellerId := uuid.New()
	store.products[42] = &entity.Product{
		Id: uuid.New(), Code: 42, FarmerId: sellerId,
		Name: "Tomatoes", Price: 40, Unit: "kg",
		Farmer: &entity.Profile{Id: sellerId, FullName: "Asha", IsFarmer: true},
	}
	h := NewNegotiationHandler(store)

	res, err := h.Handle(context.Background(), buyerConv("negotiate for product 42", entity.SessionData{}))
	require.NoError(t, err)

	neg := res.Patch.Negotiation
	require.NotNil(t, neg)
	assert.Equal(t, entity.NegotiationAwaitingOffer, neg.Stage)
	assert.Equal(t, int64(42), neg.ProductCode)
	assert.Equal(t, sellerId, neg.SellerId)
	assert.Equal(t, 40.0, neg.ProposedPrice)
	assert.Contains(t, res.Reply, "What price")
	assert.Empty(t, store.sentMessages)
}

func TestNegotiationSendsProposalMessage(t *testing.T) {
	store := newFakeStore()
	h := NewNegotiationHandler(store)

	sellerId := uuid.New()
	data := entity.SessionData{Negotiation: &entity.NegotiationState{
		Stage:         entity.NegotiationAwaitingOffer,
		ProductId:     uuid.New(),
		ProductCode:   42,
		SellerId:      sellerId,
		ProposedPrice: 40,
	}}

	conv := buyerConv("₹30", data)
	res, err := h.Handle(context.Background(), conv)
	require.NoError(t, err)

	require.Len(t, store.sentMessages, 1)
	msg := store.sentMessages[0]
	assert.Equal(t, "Proposed price: ₹30", msg.Content)
	assert.Equal(t, sellerId, msg.ReceiverId)
	assert.Equal(t, conv.UserId, msg.SenderId)

	require.NotNil(t, res.Patch.Negotiation)
	assert.Equal(t, 30.0, res.Patch.Negotiation.ProposedPrice)
}

func TestNegotiationRepromptsWithoutPrice(t *testing.T) {
	store := newFakeStore()
	h := NewNegotiationHandler(store)

	data := entity.SessionData{Negotiation: &entity.NegotiationState{
		Stage: entity.NegotiationAwaitingOffer, SellerId: uuid.New(),
	}}

	res, err := h.Handle(context.Background(), buyerConv("hmm let me think", data))
	require.NoError(t, err)
	assert.Empty(t, store.sentMessages)
	assert.True(t, res.Patch.IsZero())
	assert.Contains(t, res.Reply, "price")
}

func TestNegotiationUnknownProduct(t *testing.T) {
	h := NewNegotiationHandler(newFakeStore())

	res, err := h.Handle(context.Background(), buyerConv("negotiate for product 99", entity.SessionData{}))
	require.NoError(t, err)
	assert.Nil(t, res.Patch.Negotiation)
	assert.Contains(t, res.Reply, "couldn't find product 99")
}

func TestOrderViewEmptyHistory(t *testing.T) {
	h := NewOrderViewHandler(newFakeStore())

	res, err := h.Handle(context.Background(), buyerConv("show my orders", entity.SessionData{}))
	require.NoError(t, err)
	assert.Equal(t, "You haven't placed any orders yet.", res.Reply)
}

func TestOrderViewRendersHistory(t *testing.T) {
	store := newFakeStore()
	reviewed := &entity.Review{Rating: 4}
	store.history = []*entity.OrderHistory{
		{
			Order:        entity.Order{Quantity: 2, TotalPrice: 80, Status: entity.OrderStatusCompleted},
			ProductName:  "Tomatoes",
			ProductPrice: 40,
			ProductUnit:  "kg",
			Review:       reviewed,
		},
		{
			Order:        entity.Order{Quantity: 1, TotalPrice: 60, Status: entity.OrderStatusPending},
			ProductName:  "Mangoes",
			ProductPrice: 60,
			ProductUnit:  "dozen",
		},
	}
	h := NewOrderViewHandler(store)

	res, err := h.Handle(context.Background(), buyerConv("show my orders", entity.SessionData{}))
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "Tomatoes")
	assert.Contains(t, res.Reply, "Your rating: 4/5")
	assert.Contains(t, res.Reply, "Mangoes")
	assert.Contains(t, res.Reply, "(Not reviewed yet)")
}

func TestOrderViewHintOnOtherMessage(t *testing.T) {
	h := NewOrderViewHandler(newFakeStore())

	res, err := h.Handle(context.Background(), buyerConv("orders stuff", entity.SessionData{}))
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "show my orders")
}

func TestAnalyticsEmptyIsIdempotent(t *testing.T) {
	h := NewAnalyticsHandler(newFakeStore())
	conv := farmerConv("show analytics", entity.SessionData{})

	for i := 0; i < 2; i++ {
		res, err := h.Handle(context.Background(), conv)
		require.NoError(t, err)
		assert.Equal(t, "No analytics available yet. You need some orders and reviews first.", res.Reply)
		assert.True(t, res.Patch.IsZero())
	}
}

func TestAnalyticsRendersRatings(t *testing.T) {
	store := newFakeStore()
	store.ratings = []*entity.ProductRating{
		{Name: "Tomatoes", AvgRating: 4.5, ReviewCount: 2},
	}
	h := NewAnalyticsHandler(store)

	res, err := h.Handle(context.Background(), farmerConv("show insights", entity.SessionData{}))
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "Tomatoes: 4.5/5 (2 reviews)")
}

func TestHelpIsRoleFlavored(t *testing.T) {
	h := NewHelpHandler()

	res, err := h.Handle(context.Background(), farmerConv("hello", entity.SessionData{}))
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "add product")

	res, err = h.Handle(context.Background(), buyerConv("hello", entity.SessionData{}))
	require.NoError(t, err)
	assert.NotContains(t, res.Reply, "add product")
	assert.Contains(t, res.Reply, "negotiate")
}
