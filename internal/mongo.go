package internal

import (
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"hotelpay/config"
	"hotelpay/entity"
	"hotelpay/services"
	"log"
)

const (
	collectionLog      = "payment_log"
	collectionBookings = "bookings"
	collectionPayments = "payments"
)

type MongoDB struct {
	ctx              context.Context
	clientOptions    *options.ClientOptions
	database         string
	logRecordsNumber int64
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:              context.Background(),
		clientOptions:    clientOptions,
		database:         conf.Mongo.Database,
		logRecordsNumber: conf.LogRecords,
	}
	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	err := connection.Disconnect(m.ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) GetBooking(ctx context.Context, reference string) (*entity.Booking, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "reference", Value: reference}}
	collection := connection.Database(m.database).Collection(collectionBookings)
	var booking entity.Booking
	err = collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (m *MongoDB) GetBookingByTradeNo(ctx context.Context, tradeNo string) (*entity.Booking, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "payment_trade_no", Value: tradeNo}}
	collection := connection.Database(m.database).Collection(collectionBookings)
	var booking entity.Booking
	err = collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (m *MongoDB) UpdateBooking(ctx context.Context, booking *entity.Booking) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionBookings)
	filter := bson.D{{Key: "reference", Value: booking.Reference}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: booking.Status},
			{Key: "payment_attempt", Value: booking.PaymentAttempt},
			{Key: "payment_trade_no", Value: booking.PaymentTradeNo},
			{Key: "payment_error", Value: booking.PaymentError},
			{Key: "time_paid", Value: booking.TimePaid},
		}},
	}
	if _, err = collection.UpdateOne(ctx, filter, update); err != nil {
		return err
	}
	return nil
}

func (m *MongoDB) SavePaymentResult(ctx context.Context, result *entity.TradeResult) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionPayments)
	_, err = collection.InsertOne(ctx, result)
	return err
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}
