package vehiclesrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/vehicles-api/pkg/core/model"
)

type rawVehicleReq struct {
	Condition string      `json:"condition" binding:"required,oneof=USED NEW"`
	Details   rawDetails  `json:"details" binding:"required"`
	Location  rawLocation `json:"location" binding:"required"`
	Price     string      `json:"price" binding:"omitempty"`
}

type rawDetails struct {
	Make          string `json:"make" binding:"required"`
	Model         string `json:"model" binding:"required"`
	ModelYear     int    `json:"modelYear" binding:"omitempty"`
	Body          string `json:"body" binding:"omitempty"`
	Fuel          string `json:"fuel" binding:"omitempty"`
	Engine        string `json:"engine" binding:"omitempty"`
	Mileage       int    `json:"mileage" binding:"omitempty"`
	ExternalColor string `json:"externalColor" binding:"omitempty"`
	NumberOfDoors int    `json:"numberOfDoors" binding:"omitempty"`
}

type rawLocation struct {
	Lat *float64 `json:"lat" binding:"required,latitude"`
	Lon *float64 `json:"lon" binding:"required,longitude"`
}

// DserVehicleReq deserializes the JSON body of a create or update
// vehicle request into a model.Vehicle instance, serializing the
// binding errors (if any) as a Bad Request response and returning nil.
func (rs *resource) DserVehicleReq(c *gin.Context) *model.Vehicle {
	req := &rawVehicleReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	cond, err := model.ParseCondition(req.Condition)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "condition", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &model.Vehicle{
		Condition: cond,
		Details: model.Details{
			Make:          req.Details.Make,
			Model:         req.Details.Model,
			ModelYear:     req.Details.ModelYear,
			Body:          req.Details.Body,
			Fuel:          req.Details.Fuel,
			Engine:        req.Details.Engine,
			Mileage:       req.Details.Mileage,
			ExternalColor: req.Details.ExternalColor,
			NumberOfDoors: req.Details.NumberOfDoors,
		},
		Location: model.Location{
			Lat: *req.Location.Lat,
			Lon: *req.Location.Lon,
		},
		Price: req.Price,
	}
}

// DserVehicleID deserializes the vid path parameter as a uuid,
// serializing a Bad Request response for malformed values.
func (rs *resource) DserVehicleID(c *gin.Context) (uuid.UUID, bool) {
	vid, err := uuid.Parse(c.Param("vid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "vid", "Path param vid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return vid, true
}

// VehicleResp is the response representation of one vehicle view,
// merging the repository record with its transient price and address
// decorations.
type VehicleResp struct {
	ID        uuid.UUID    `json:"id"`
	Condition string       `json:"condition"`
	Details   rawDetails   `json:"details"`
	Location  LocationResp `json:"location"`
	Price     string       `json:"price,omitempty"`

	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// LocationResp carries the coordinates of a vehicle in addition to
// its resolved address fields, as far as they are known.
type LocationResp struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
	Zip     string  `json:"zip,omitempty"`
}

// SerVehicle serializes one vehicle model as a VehicleResp.
func SerVehicle(v model.Vehicle) VehicleResp {
	return VehicleResp{
		ID:        v.ID,
		Condition: v.Condition.String(),
		Details: rawDetails{
			Make:          v.Details.Make,
			Model:         v.Details.Model,
			ModelYear:     v.Details.ModelYear,
			Body:          v.Details.Body,
			Fuel:          v.Details.Fuel,
			Engine:        v.Details.Engine,
			Mileage:       v.Details.Mileage,
			ExternalColor: v.Details.ExternalColor,
			NumberOfDoors: v.Details.NumberOfDoors,
		},
		Location: LocationResp{
			Lat:     v.Location.Lat,
			Lon:     v.Location.Lon,
			Address: v.Location.Address,
			City:    v.Location.City,
			State:   v.Location.State,
			Zip:     v.Location.Zip,
		},
		Price:      v.Price,
		CreatedAt:  v.CreatedAt,
		ModifiedAt: v.ModifiedAt,
	}
}

// SerVehicles serializes a list of vehicle models.
func SerVehicles(vl []model.Vehicle) []VehicleResp {
	rl := make([]VehicleResp, 0, len(vl))
	for _, v := range vl {
		rl = append(rl, SerVehicle(v))
	}
	return rl
}
