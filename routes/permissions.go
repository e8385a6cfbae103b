package routes

import (
	"net/http"

	"delivery-management-api/auth"
	"delivery-management-api/models"
)

var (
	admin  = models.RoleAdmin
	driver = models.RoleDriver
	user   = models.RoleUser
)

// Permissions is the fixed role table for every protected endpoint
var Permissions = auth.Permissions{
	{Method: http.MethodPost, Path: "/api/drivers"}:            {driver},
	{Method: http.MethodGet, Path: "/api/drivers"}:             {admin},
	{Method: http.MethodGet, Path: "/api/drivers/:id"}:         {admin},
	{Method: http.MethodPut, Path: "/api/drivers/:id"}:         {driver},
	{Method: http.MethodDelete, Path: "/api/drivers/:id"}:      {admin},
	{Method: http.MethodGet, Path: "/api/drivers/:id/payment"}: {admin, driver},
	{Method: http.MethodPost, Path: "/api/orders"}:             {admin, user},
	{Method: http.MethodGet, Path: "/api/orders"}:              {admin, driver},
	{Method: http.MethodGet, Path: "/api/orders/:id"}:          {admin, driver},
	{Method: http.MethodPut, Path: "/api/orders/:id"}:          {admin, driver},
	{Method: http.MethodDelete, Path: "/api/orders/:id"}:       {admin},
	{Method: http.MethodPost, Path: "/api/routes"}:             {admin, driver},
	{Method: http.MethodGet, Path: "/api/routes"}:              {admin},
	{Method: http.MethodGet, Path: "/api/routes/:id"}:          {admin, driver},
	{Method: http.MethodPut, Path: "/api/routes/:id"}:          {admin, driver},
	{Method: http.MethodDelete, Path: "/api/routes/:id"}:       {admin},
	{Method: http.MethodPost, Path: "/api/routes/:id/steps"}:   {admin, driver},
}
