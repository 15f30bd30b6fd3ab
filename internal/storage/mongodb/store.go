// Package mongodb implements the storage interfaces on top of MongoDB.
//
// Domain types carry hex string ids; this package converts them to ObjectIDs
// at the boundary and rejects malformed ids with storage.ErrInvalidID before
// any collection is touched.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistro-boss/backend/internal/domain/cart"
	"github.com/bistro-boss/backend/internal/domain/menu"
	"github.com/bistro-boss/backend/internal/domain/payment"
	"github.com/bistro-boss/backend/internal/domain/review"
	"github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/internal/storage"
)

// Store implements the storage interfaces backed by MongoDB.
type Store struct {
	users    *mongo.Collection
	menu     *mongo.Collection
	reviews  *mongo.Collection
	carts    *mongo.Collection
	payments *mongo.Collection
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.MenuStore = (*Store)(nil)
var _ storage.ReviewStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.PaymentStore = (*Store)(nil)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// New creates a Store over the named collections of db.
func New(db *mongo.Database) *Store {
	return &Store{
		users:    db.Collection("users"),
		menu:     db.Collection("menu"),
		reviews:  db.Collection("reviews"),
		carts:    db.Collection("carts"),
		payments: db.Collection("payments"),
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrInvalidID
	}
	return oid, nil
}

func parseIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

// Internal document types ----------------------------------------------------

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d userDoc) toDomain() user.User {
	return user.User{ID: d.ID.Hex(), Name: d.Name, Email: d.Email, Role: d.Role, CreatedAt: d.CreatedAt}
}

type menuDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Price    float64            `bson:"price"`
	Recipe   string             `bson:"recipe"`
	Image    string             `bson:"image"`
}

func (d menuDoc) toDomain() menu.Item {
	return menu.Item{ID: d.ID.Hex(), Name: d.Name, Category: d.Category, Price: d.Price, Recipe: d.Recipe, Image: d.Image}
}

type reviewDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Details string             `bson:"details"`
	Rating  float64            `bson:"rating"`
}

type cartDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	MenuItemID string             `bson:"menuItemId"`
	Name       string             `bson:"name"`
	Image      string             `bson:"image"`
	Price      float64            `bson:"price"`
}

func (d cartDoc) toDomain() cart.Item {
	return cart.Item{ID: d.ID.Hex(), Email: d.Email, MenuItemID: d.MenuItemID, Name: d.Name, Image: d.Image, Price: d.Price}
}

type paymentDoc struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Email         string               `bson:"email"`
	Price         float64              `bson:"price"`
	TransactionID string               `bson:"transactionId"`
	Date          time.Time            `bson:"date"`
	CartIDs       []primitive.ObjectID `bson:"cartIds"`
	MenuItemIDs   []primitive.ObjectID `bson:"menuItemIds"`
	Status        string               `bson:"status"`
}

func (d paymentDoc) toDomain() payment.Payment {
	p := payment.Payment{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		Price:         d.Price,
		TransactionID: d.TransactionID,
		Date:          d.Date,
		Status:        d.Status,
	}
	for _, oid := range d.CartIDs {
		p.CartIDs = append(p.CartIDs, oid.Hex())
	}
	for _, oid := range d.MenuItemIDs {
		p.MenuItemIDs = append(p.MenuItemIDs, oid.Hex())
	}
	return p
}

// UserStore -------------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	err := s.users.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return user.User{}, storage.ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, err
	}

	doc := userDoc{Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: time.Now().UTC()}
	res, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return user.User{}, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, storage.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return doc.toDomain(), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	cur, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]user.User, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toDomain())
	}
	return result, nil
}

func (s *Store) PromoteUser(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": user.RoleAdmin}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.users.EstimatedDocumentCount(ctx)
}

// MenuStore -------------------------------------------------------------------

func (s *Store) CreateMenuItem(ctx context.Context, it menu.Item) (menu.Item, error) {
	doc := menuDoc{Name: it.Name, Category: it.Category, Price: it.Price, Recipe: it.Recipe, Image: it.Image}
	res, err := s.menu.InsertOne(ctx, doc)
	if err != nil {
		return menu.Item{}, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (menu.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return menu.Item{}, err
	}
	var doc menuDoc
	err = s.menu.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return menu.Item{}, storage.ErrNotFound
	}
	if err != nil {
		return menu.Item{}, err
	}
	return doc.toDomain(), nil
}

func (s *Store) ListMenuItems(ctx context.Context) ([]menu.Item, error) {
	cur, err := s.menu.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []menuDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]menu.Item, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toDomain())
	}
	return result, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, id string, upd menu.Update) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.menu.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":     upd.Name,
		"category": upd.Category,
		"price":    upd.Price,
		"recipe":   upd.Recipe,
		"image":    upd.Image,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.menu.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountMenuItems(ctx context.Context) (int64, error) {
	return s.menu.EstimatedDocumentCount(ctx)
}

// ReviewStore -----------------------------------------------------------------

func (s *Store) ListReviews(ctx context.Context) ([]review.Review, error) {
	cur, err := s.reviews.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]review.Review, 0, len(docs))
	for _, d := range docs {
		result = append(result, review.Review{ID: d.ID.Hex(), Name: d.Name, Details: d.Details, Rating: d.Rating})
	}
	return result, nil
}

// CartStore -------------------------------------------------------------------

func (s *Store) CreateCartItem(ctx context.Context, it cart.Item) (cart.Item, error) {
	doc := cartDoc{Email: it.Email, MenuItemID: it.MenuItemID, Name: it.Name, Image: it.Image, Price: it.Price}
	res, err := s.carts.InsertOne(ctx, doc)
	if err != nil {
		return cart.Item{}, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (s *Store) ListCartItems(ctx context.Context, email string) ([]cart.Item, error) {
	cur, err := s.carts.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	var docs []cartDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]cart.Item, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toDomain())
	}
	return result, nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.carts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCartItems(ctx context.Context, ids []string) (int64, error) {
	oids, err := parseIDs(ids)
	if err != nil {
		return 0, err
	}
	res, err := s.carts.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PaymentStore ----------------------------------------------------------------

func (s *Store) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	cartOIDs, err := parseIDs(p.CartIDs)
	if err != nil {
		return payment.Payment{}, err
	}
	itemOIDs, err := parseIDs(p.MenuItemIDs)
	if err != nil {
		return payment.Payment{}, err
	}

	doc := paymentDoc{
		Email:         p.Email,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		Date:          p.Date,
		CartIDs:       cartOIDs,
		MenuItemIDs:   itemOIDs,
		Status:        p.Status,
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now().UTC()
	}
	res, err := s.payments.InsertOne(ctx, doc)
	if err != nil {
		return payment.Payment{}, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (s *Store) ListPaymentsByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	cur, err := s.payments.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	var docs []paymentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]payment.Payment, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toDomain())
	}
	return result, nil
}

func (s *Store) CountPayments(ctx context.Context) (int64, error) {
	return s.payments.EstimatedDocumentCount(ctx)
}

func (s *Store) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
	cur, err := s.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalRevenue, nil
}

func (s *Store) CategorySales(ctx context.Context) ([]payment.CategorySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuItemIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "revenue", Value: 1},
		}}},
	}
	cur, err := s.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []payment.CategorySales
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
