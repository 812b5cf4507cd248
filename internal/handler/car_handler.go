package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"car-service/internal/model"
	"car-service/pkg/logger"
	"car-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CarRequest defines the structure for car creation requests. Scalar
// fields are pointers so that omitted values insert as NULL, the same
// way the listing table treats them.
type CarRequest struct {
	Name  *string `json:"name"`
	Brand *string `json:"brand"`
	Model *string `json:"model"`

	Year              *int     `json:"year"`
	Price             *int     `json:"price"`
	KmsDriven         *int     `json:"kms_driven"`
	FuelType          *string  `json:"fuel_type"`
	Transmission      *string  `json:"transmission"`
	Category          *string  `json:"category"`
	OwnerCount        *int     `json:"owner_count"`
	BodyType          *string  `json:"body_type"`
	RegistrationState *string  `json:"registration_state"`
	Mileage           *float64 `json:"mileage"`
	EngineCC          *int     `json:"engine_cc"`
	PowerBHP          *int     `json:"power_bhp"`
	TorqueNM          *int     `json:"torque_nm"`

	Features             []string `json:"features"`
	SafetyFeatures       []string `json:"safety_features"`
	ComfortFeatures      []string `json:"comfort_features"`
	InfotainmentFeatures []string `json:"infotainment_features"`
	ExteriorFeatures     []string `json:"exterior_features"`
	InteriorFeatures     []string `json:"interior_features"`

	ServiceHistory     []json.RawMessage      `json:"service_history"`
	TyreCondition      map[string]interface{} `json:"tyre_condition"`
	BatteryHealth      map[string]interface{} `json:"battery_health"`
	InsuranceValidTill *string                `json:"insurance_valid_till"`
	Photos             []string               `json:"photos"`
}

// toModel serializes the structured fields into their text-column form.
// Omitted lists and mappings default to "[]" and "{}" so the stored
// value is always valid JSON.
func (r *CarRequest) toModel() (model.Car, error) {
	car := model.Car{
		Name:               r.Name,
		Brand:              r.Brand,
		Model:              r.Model,
		Year:               r.Year,
		Price:              r.Price,
		KmsDriven:          r.KmsDriven,
		FuelType:           r.FuelType,
		Transmission:       r.Transmission,
		Category:           r.Category,
		OwnerCount:         r.OwnerCount,
		BodyType:           r.BodyType,
		RegistrationState:  r.RegistrationState,
		Mileage:            r.Mileage,
		EngineCC:           r.EngineCC,
		PowerBHP:           r.PowerBHP,
		TorqueNM:           r.TorqueNM,
		InsuranceValidTill: r.InsuranceValidTill,
	}

	fields := []struct {
		dst   *string
		value interface{}
	}{
		{&car.Features, emptyIfNilList(r.Features)},
		{&car.SafetyFeatures, emptyIfNilList(r.SafetyFeatures)},
		{&car.ComfortFeatures, emptyIfNilList(r.ComfortFeatures)},
		{&car.InfotainmentFeatures, emptyIfNilList(r.InfotainmentFeatures)},
		{&car.ExteriorFeatures, emptyIfNilList(r.ExteriorFeatures)},
		{&car.InteriorFeatures, emptyIfNilList(r.InteriorFeatures)},
		{&car.ServiceHistory, emptyIfNilRaw(r.ServiceHistory)},
		{&car.TyreCondition, emptyIfNilMap(r.TyreCondition)},
		{&car.BatteryHealth, emptyIfNilMap(r.BatteryHealth)},
		{&car.Photos, emptyIfNilList(r.Photos)},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.value)
		if err != nil {
			return model.Car{}, err
		}
		*f.dst = string(b)
	}

	return car, nil
}

func emptyIfNilList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func emptyIfNilRaw(v []json.RawMessage) []json.RawMessage {
	if v == nil {
		return []json.RawMessage{}
	}
	return v
}

func emptyIfNilMap(v map[string]interface{}) map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v
}

// CarHandler serves the car listing endpoints against the injected
// database handle.
type CarHandler struct {
	db *gorm.DB
}

func NewCarHandler(db *gorm.DB) *CarHandler {
	return &CarHandler{db: db}
}

// ListCars handles retrieving all car listings
func (h *CarHandler) ListCars(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCarOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	cars := []model.Car{}
	if result := h.db.Find(&cars); result.Error != nil {
		log.Error("Failed to list cars", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"server error": result.Error.Error(),
		})
	}

	log.Info("Cars retrieved", zap.Int("count", len(cars)))
	return c.JSON(http.StatusOK, cars)
}

// GetCar handles retrieving a single car by ID. Structured fields come
// back exactly as stored, as serialized JSON text.
func (h *CarHandler) GetCar(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordCarOperation("get")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var car model.Car
	result := h.db.First(&car, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Car not found", zap.String("car_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Car not found",
			})
		}
		log.Error("Failed to get car", zap.String("car_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, "Server Error")
	}

	return c.JSON(http.StatusOK, car)
}

// CreateCar handles creating a single car listing
func (h *CarHandler) CreateCar(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCarOperation("create")

	var req CarRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	car, err := req.toModel()
	if err != nil {
		log.Error("Failed to serialize car attributes", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	// Required columns are enforced by the NOT NULL constraints, not
	// validated up front: a missing name/brand/model surfaces as a 500.
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&car); result.Error != nil {
		log.Error("Failed to create car", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	log.Info("Car created", zap.Uint("car_id", car.ID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": car.ID})
}

// BulkCreateCars handles inserting a batch of car listings. Inserts run
// concurrently and the batch is not wrapped in a transaction: rows
// already committed stay committed even when a later element fails.
func (h *CarHandler) BulkCreateCars(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCarOperation("bulk_create")

	var reqs []CarRequest
	if err := c.Bind(&reqs); err != nil {
		log.Error("Bulk body is not an array", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Expected an array",
		})
	}
	// A JSON null or empty body binds to a nil slice; only a real array
	// is accepted.
	if reqs == nil {
		log.Error("Bulk body is not an array")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Expected an array",
		})
	}

	var g errgroup.Group
	for i := range reqs {
		req := reqs[i]
		g.Go(func() error {
			car, err := req.toModel()
			if err != nil {
				return err
			}
			defer prometheus.TrackDBOperation("insert")(time.Now())
			return h.db.Create(&car).Error
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("Bulk insert failed", zap.Int("count", len(reqs)), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	log.Info("Bulk insert completed", zap.Int("inserted", len(reqs)))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "inserted": len(reqs)})
}

// DeleteCar handles deleting a car by ID
func (h *CarHandler) DeleteCar(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordCarOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.Delete(&model.Car{}, "id = ?", id)
	if result.Error != nil {
		log.Error("Failed to delete car", zap.String("car_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": result.Error.Error()})
	}

	if result.RowsAffected == 0 {
		log.Warn("Car not found for deletion", zap.String("car_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Car not found",
		})
	}

	log.Info("Car deleted", zap.String("car_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Car deleted"})
}
