package stubserver

import (
	"errors"
	"net/http"

	"github.com/JaydevKalariyaa/proxima-sales/pkg/calc"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	if req.Email != s.cfg.Email || req.Password != s.cfg.Password {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.tokens.Generate(req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Could not issue a session token")
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

type saleItemRequest struct {
	Category      string  `json:"category"`
	Room          string  `json:"room"`
	ProductName   string  `json:"product_name"`
	ProductCode   string  `json:"product_code"`
	SizeFinish    string  `json:"size_finish"`
	MRP           float64 `json:"mrp"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Quantity      float64 `json:"quantity"`
}

type createSaleRequest struct {
	Status string            `json:"status"`
	Items  []saleItemRequest `json:"items"`
}

func (s *Server) createSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != "draft" {
		respondError(c, http.StatusBadRequest, "New sales must have status draft")
		return
	}
	if len(req.Items) == 0 {
		respondError(c, http.StatusBadRequest, "A sale needs at least one item")
		return
	}

	sale := Sale{Status: "draft"}
	for _, in := range req.Items {
		if in.ProductName == "" || in.MRP <= 0 || in.Quantity <= 0 {
			respondError(c, http.StatusBadRequest, "Each item needs a product name, MRP and quantity")
			return
		}
		price := calc.PricePerPiece(in.MRP, in.DiscountType, in.DiscountValue)
		item := SaleItem{
			Category:      in.Category,
			Room:          in.Room,
			ProductName:   in.ProductName,
			ProductCode:   in.ProductCode,
			SizeFinish:    in.SizeFinish,
			MRP:           in.MRP,
			DiscountType:  in.DiscountType,
			DiscountValue: in.DiscountValue,
			Quantity:      in.Quantity,
			PricePerPiece: price,
			TotalAmount:   price * in.Quantity,
		}
		sale.Items = append(sale.Items, item)
		sale.TotalAmount += item.TotalAmount
	}

	if err := s.db.Create(&sale).Error; err != nil {
		s.logger.Error("create sale failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not save the sale")
		return
	}

	respond(c, http.StatusCreated, "Sale created", gin.H{"id": sale.ID})
}

type confirmSaleRequest struct {
	Client struct {
		Name          string `json:"name"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		ArcName       string `json:"arc_name"`
		ArcPhone      string `json:"arc_phone"`
		ArcAddress    string `json:"arc_address"`
		ReviewScanner string `json:"review_scanner"`
	} `json:"client"`
}

// confirmSale attaches client info to a sale and marks it confirmed. Repeating
// the call overwrites the sale's client record instead of creating another, so
// retries after a timeout are safe.
func (s *Server) confirmSale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid sale id")
		return
	}

	var req confirmSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Client.Name == "" {
		respondError(c, http.StatusBadRequest, "Client name is required")
		return
	}
	if req.Client.Phone != "" && !calc.ValidatePhoneNumber(req.Client.Phone) {
		respondError(c, http.StatusBadRequest, "Client phone number is not valid")
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var sale Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			return err
		}
		if sale.Status == "cancelled" {
			return errSaleFinalized
		}

		client := Client{
			Name:          req.Client.Name,
			Phone:         req.Client.Phone,
			Address:       req.Client.Address,
			ArcName:       req.Client.ArcName,
			ArcPhone:      req.Client.ArcPhone,
			ArcAddress:    req.Client.ArcAddress,
			ReviewScanner: req.Client.ReviewScanner,
		}
		if sale.ClientID != nil {
			client.ID = *sale.ClientID
			if err := tx.Save(&client).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
			sale.ClientID = &client.ID
		}

		sale.Status = "confirmed"
		return tx.Save(&sale).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "Sale not found")
	case errors.Is(err, errSaleFinalized):
		respondError(c, http.StatusBadRequest, "A cancelled sale cannot be confirmed")
	case err != nil:
		s.logger.Error("confirm sale failed", zap.String("sale_id", saleID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not confirm the sale")
	default:
		respond(c, http.StatusOK, "Sale confirmed", nil)
	}
}

var errSaleFinalized = errors.New("sale already finalized")

func (s *Server) cancelSale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid sale id")
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var sale Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			return err
		}
		if sale.Status != "draft" {
			return errSaleFinalized
		}
		sale.Status = "cancelled"
		return tx.Save(&sale).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "Sale not found")
	case errors.Is(err, errSaleFinalized):
		respondError(c, http.StatusBadRequest, "Only draft sales can be cancelled")
	case err != nil:
		s.logger.Error("cancel sale failed", zap.String("sale_id", saleID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not cancel the sale")
	default:
		respond(c, http.StatusOK, "Sale cancelled", nil)
	}
}

func (s *Server) listSales(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		respondError(c, http.StatusBadRequest, "client_id is required")
		return
	}
	id, err := uuid.Parse(clientID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid client id")
		return
	}

	var sales []Sale
	err = s.db.
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("client_id = ?", id).
		Order("created_at DESC").
		Find(&sales).Error
	if err != nil {
		s.logger.Error("list sales failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not load sales")
		return
	}

	respond(c, http.StatusOK, "Sales retrieved", sales)
}

func (s *Server) listClients(c *gin.Context) {
	params := pagination.Default()
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	params.Validate()
	search := c.Query("search")

	query := s.db.Model(&Client{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name LIKE ? OR phone LIKE ? OR address LIKE ? OR arc_name LIKE ? OR arc_phone LIKE ?",
			like, like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		s.logger.Error("count clients failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not load clients")
		return
	}

	var clients []Client
	err := query.Offset(params.Offset()).Limit(params.PageSize).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		s.logger.Error("list clients failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not load clients")
		return
	}

	respond(c, http.StatusOK, "Clients retrieved", pagination.NewResult(clients, total))
}

// deleteClient removes a client together with every sale that references it,
// so the listing never shows orphaned sales.
func (s *Server) deleteClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid client id")
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var client Client
		if err := tx.First(&client, "id = ?", clientID).Error; err != nil {
			return err
		}

		var saleIDs []uuid.UUID
		if err := tx.Model(&Sale{}).Where("client_id = ?", clientID).Pluck("id", &saleIDs).Error; err != nil {
			return err
		}
		if len(saleIDs) > 0 {
			if err := tx.Where("sale_id IN ?", saleIDs).Delete(&SaleItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", saleIDs).Delete(&Sale{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&client).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "Client not found")
	case err != nil:
		s.logger.Error("delete client failed", zap.String("client_id", clientID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not delete the client")
	default:
		c.Status(http.StatusNoContent)
	}
}
