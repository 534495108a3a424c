package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type mongoContact struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

type mongoClient struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	CompanyName        string             `bson:"company_name"`
	Industry           string             `bson:"industry"`
	Address            string             `bson:"address"`
	PrimaryContact     mongoContact       `bson:"primary_contact"`
	AnnualTurnover     float64            `bson:"annual_turnover"`
	DocumentsSubmitted bool               `bson:"documents_submitted"`
	RMID               string             `bson:"rm_id"`
}

func toMongoClient(c *domain.Client) mongoClient {
	return mongoClient{
		CompanyName: c.CompanyName,
		Industry:    c.Industry,
		Address:     c.Address,
		PrimaryContact: mongoContact{
			Name:  c.PrimaryContact.Name,
			Email: c.PrimaryContact.Email,
			Phone: c.PrimaryContact.Phone,
		},
		AnnualTurnover:     c.AnnualTurnover,
		DocumentsSubmitted: c.DocumentsSubmitted,
		RMID:               c.RMID,
	}
}

func (m mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:          m.ID.Hex(),
		CompanyName: m.CompanyName,
		Industry:    m.Industry,
		Address:     m.Address,
		PrimaryContact: domain.Contact{
			Name:  m.PrimaryContact.Name,
			Email: m.PrimaryContact.Email,
			Phone: m.PrimaryContact.Phone,
		},
		AnnualTurnover:     m.AnnualTurnover,
		DocumentsSubmitted: m.DocumentsSubmitted,
		RMID:               m.RMID,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoClient(c)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := parseID(id, domain.ErrClientNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) FindByRM(ctx context.Context, rmID string) ([]*domain.Client, error) {
	return r.find(ctx, bson.M{"rm_id": rmID})
}

// FindByCompanyName matches clients whose company name contains fragment,
// ignoring case.
func (r *ClientRepository) FindByCompanyName(ctx context.Context, fragment string) ([]*domain.Client, error) {
	return r.find(ctx, bson.M{"company_name": containsFold(fragment)})
}

// FindByIndustry matches the whole industry value, ignoring case.
func (r *ClientRepository) FindByIndustry(ctx context.Context, industry string) ([]*domain.Client, error) {
	return r.find(ctx, bson.M{"industry": equalFold(industry)})
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]*domain.Client, error) {
	return r.find(ctx, bson.M{})
}

func (r *ClientRepository) find(ctx context.Context, filter bson.M) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	var docs []mongoClient
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	clients := make([]*domain.Client, 0, len(docs))
	for _, d := range docs {
		clients = append(clients, d.toDomain())
	}
	return clients, nil
}

func (r *ClientRepository) Save(ctx context.Context, c *domain.Client) error {
	oid, err := parseID(c.ID, domain.ErrClientNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoClient(c)
	doc.ID = oid
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "rm_id", Value: 1}}},
		{Keys: bson.D{{Key: "industry", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
