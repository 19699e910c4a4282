package customer

import (
	"github.com/amirasaad/bankledger/pkg/service/banking"
	"github.com/amirasaad/bankledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the customer endpoints.
func Routes(app *fiber.App, svc *banking.Service) {
	app.Post("/customers", CreateCustomer(svc))
	app.Get("/customers", ListCustomers(svc))
}

// CreateCustomer registers a customer profile.
func CreateCustomer(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCustomerRequest](c)
		if input == nil {
			return err // error response already written
		}
		cust, err := svc.CreateCustomer(c.UserContext(), input.Name, input.Email, input.Phone)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created customer", ToDTO(cust))
	}
}

// ListCustomers returns the newest customers first. ?limit= overrides the default.
func ListCustomers(svc *banking.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		if limit < 0 || limit > 100 {
			return common.ProblemDetailsJSON(c, "Invalid limit", nil, "limit must be between 1 and 100", fiber.StatusBadRequest)
		}
		list, err := svc.ListCustomers(c.UserContext(), limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list customers", err)
		}
		out := make([]CustomerDTO, 0, len(list))
		for _, cust := range list {
			out = append(out, ToDTO(cust))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customers fetched", out)
	}
}
