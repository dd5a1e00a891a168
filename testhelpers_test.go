//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/application"
	"github.com/rideon-rentals/service-rental/internal/common/kafka"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	rentalEvents "github.com/rideon-rentals/service-rental/internal/events"
	eventsconsumer "github.com/rideon-rentals/service-rental/internal/events/consumer"
	"github.com/rideon-rentals/service-rental/internal/notification"
	"github.com/rideon-rentals/service-rental/internal/repository"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// rentalStack holds the wired-up rental service components.
type rentalStack struct {
	Booking    *application.BookingService
	Settlement *application.SettlementService
	Fleet      *application.FleetService
	Consumer   *eventsconsumer.PaymentEventConsumer
	Cleanup    func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rental",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rental sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.VehicleModel{},
		&repository.BookingModel{},
		&repository.PaymentModel{},
		&repository.VehicleReturnModel{},
		&repository.TripInitiationModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, rentalEvents.TopicBookingEvents, rentalEvents.TopicPaymentEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupRentalStack wires up the full rental service stack.
func setupRentalStack(t *testing.T, db *gorm.DB, brokers []string) *rentalStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	bookingRepo := repository.NewGormBookingRepository(db)
	tripRepo := repository.NewGormTripRepository(db)
	returnRepo := repository.NewGormReturnRepository(db)
	vehicleRepo := repository.NewGormVehicleRepository(db)
	uow := repository.NewGormUnitOfWork(db)

	producer := kafka.NewProducer(brokers, logger)
	notifier := notification.NewKafkaNotifier(producer, "service-rental-test", logger)

	bookingSvc := application.NewBookingService(uow, bookingRepo, tripRepo, vehicleRepo, notifier, logger)
	settlementSvc := application.NewSettlementService(uow, returnRepo, notifier, logger)
	fleetSvc := application.NewFleetService(vehicleRepo, logger)

	groupID := fmt.Sprintf("test-rental-%s", uuid.New().String()[:8])
	consumer := eventsconsumer.NewPaymentEventConsumer(brokers, groupID, bookingSvc, logger)

	return &rentalStack{
		Booking:    bookingSvc,
		Settlement: settlementSvc,
		Fleet:      fleetSvc,
		Consumer:   consumer,
		Cleanup:    func() { _ = producer.Close() },
	}
}

// seedVehicle registers a vehicle through the fleet service.
func seedVehicle(t *testing.T, stack *rentalStack) uuid.UUID {
	t.Helper()
	dto, err := stack.Fleet.CreateVehicle(context.Background(), application.CreateVehicleRequest{
		Name:        "Honda Activa",
		VehicleType: "scooter",
		Location:    "Indiranagar",
		HourlyRate:  50,
		Rate7Day:    5000,
	})
	require.NoError(t, err)
	return dto.ID
}

// seedInitiatedBooking walks a booking to the initiated state.
func seedInitiatedBooking(t *testing.T, stack *rentalStack, vehicleID uuid.UUID) *application.BookingDTO {
	t.Helper()
	ctx := context.Background()
	start := time.Now().UTC().Add(time.Hour).Truncate(time.Hour)

	dto, err := stack.Booking.CreateBooking(ctx, uuid.New(), application.CreateBookingRequest{
		CustomerID: uuid.New(),
		VehicleID:  vehicleID,
		StartAt:    start,
		EndAt:      start.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = stack.Booking.ConfirmBooking(ctx, dto.ID)
	require.NoError(t, err)

	dto, err = stack.Booking.InitiateTrip(ctx, dto.ID, application.InitiateTripRequest{
		Customer:      bookingDomain.CustomerSnapshot{Name: "Priya Sharma", Phone: "+919876543210"},
		TermsAccepted: true,
	})
	require.NoError(t, err)
	return dto
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForBookingStatus polls the bookings table until the status matches.
func waitForBookingStatus(t *testing.T, db *gorm.DB, bookingID uuid.UUID, expectedStatus string, timeout time.Duration) repository.BookingModel {
	t.Helper()
	var result repository.BookingModel
	require.Eventually(t, func() bool {
		var model repository.BookingModel
		err := db.Where("id = ?", bookingID).First(&model).Error
		if err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "booking did not transition to %s", expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer func() { _ = conn.Close() }()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "failed to dial Kafka controller")
	defer func() { _ = controllerConn.Close() }()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create topics")
}
