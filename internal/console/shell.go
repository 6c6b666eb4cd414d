// Package console is the interactive menu over the shop service. It only
// parses input and prints; every decision is made by the service.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/invoice"
	"github.com/fjod/go_shop/internal/store"
	"go.uber.org/zap"
)

// CancelInput aborts the current prompt and returns to the menu.
const CancelInput = "-1"

const (
	optionViewProducts = 1
	optionViewCart     = 2
	optionViewOrders   = 3
	optionExit         = 4
)

// Shop is what the shell needs from the shop service.
type Shop interface {
	Catalog() store.CatalogStore
	Cart(customerID int64) (*domain.Cart, error)
	AddToCart(ctx context.Context, customerID int64, productID string, qty int) (*domain.Cart, error)
	Checkout(ctx context.Context, customerID int64) (*domain.Order, error)
	OrdersForCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
}

// errInputClosed ends the session when input runs out.
var errInputClosed = errors.New("input closed")

type inputLine struct {
	text string
	err  error
}

type Shell struct {
	shop       Shop
	customerID int64
	in         *bufio.Scanner
	out        io.Writer
	log        *zap.Logger
	lines      chan inputLine
}

func NewShell(shop Shop, customerID int64, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		shop:       shop,
		customerID: customerID,
		in:         bufio.NewScanner(in),
		out:        out,
		log:        log,
	}
}

// Run shows the main menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startReader(ctx)

	for {
		s.printMenu()
		line, err := s.readLine(ctx)
		if err != nil {
			s.println("")
			s.println("Exiting...")
			return nil
		}

		option, convErr := strconv.Atoi(line)
		if convErr != nil {
			option = 0
		}

		switch option {
		case optionViewProducts:
			err = s.viewProducts(ctx)
		case optionViewCart:
			err = s.viewCart(ctx)
		case optionViewOrders:
			err = s.viewOrders(ctx)
		case optionExit:
			s.println("Exiting...")
			return nil
		default:
			s.println("Invalid option. Please try again.")
		}

		if errors.Is(err, errInputClosed) || ctx.Err() != nil {
			s.println("")
			s.println("Exiting...")
			return nil
		}
		if err != nil {
			s.log.Error("menu action failed", zap.Int("option", option), zap.Error(err))
			s.printf("Something went wrong: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	s.println("=========================")
	s.println("       Main Menu         ")
	s.println("=========================")
	s.println("1. View Products")
	s.println("2. View Shopping Cart")
	s.println("3. View Orders")
	s.println("4. Exit")
	s.print("Select an option: ")
}

func (s *Shell) viewProducts(ctx context.Context) error {
	s.print(invoice.RenderCatalog(s.shop.Catalog().GroupByCategory()))

	for {
		s.print("Enter the ID of the product you want to add to the shopping cart (or enter -1 to cancel): ")
		productID, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		if productID == CancelInput {
			s.println("Returning to menu...")
			return nil
		}

		_, err = s.shop.AddToCart(ctx, s.customerID, productID, 1)
		switch {
		case err == nil:
			s.println("Product added successfully!")
		case errors.Is(err, store.ErrProductNotFound):
			s.println("Product not found!")
		case errors.Is(err, domain.ErrOutOfStock):
			s.println("Product is out of stock!")
		default:
			return err
		}

		another, err := s.confirm(ctx, "Do you want to add another product? (Y/N): ")
		if err != nil {
			return err
		}
		if !another {
			return nil
		}
	}
}

func (s *Shell) viewCart(ctx context.Context) error {
	cart, err := s.shop.Cart(s.customerID)
	if err != nil {
		return err
	}

	s.print(invoice.RenderCart(cart))
	if cart.IsEmpty() {
		s.println("Your cart is empty.")
		return nil
	}

	checkout, err := s.confirm(ctx, "Do you want to check out all the products? (Y/N): ")
	if err != nil {
		return err
	}
	if !checkout {
		s.println("Returning to menu...")
		return nil
	}

	order, err := s.shop.Checkout(ctx, s.customerID)
	if errors.Is(err, domain.ErrEmptyCart) {
		s.println("Your cart is empty.")
		return nil
	}
	if err != nil {
		return err
	}

	s.print(invoice.RenderOrder(order))
	s.println("You have successfully checked out the products!")
	return nil
}

func (s *Shell) viewOrders(ctx context.Context) error {
	orders, err := s.shop.OrdersForCustomer(ctx, s.customerID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.println("No orders placed yet.")
		return nil
	}

	for _, o := range orders {
		s.print(invoice.RenderOrder(o))
	}
	s.printf("%d order(s) shown.\n", len(orders))
	return nil
}

// confirm asks question until the answer is yes or no.
func (s *Shell) confirm(ctx context.Context, question string) (bool, error) {
	for {
		s.print(question)
		answer, err := s.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			s.println("Invalid input. Please enter Y or N.")
		}
	}
}

// startReader scans input on its own goroutine so a pending read can be
// abandoned when ctx is canceled.
func (s *Shell) startReader(ctx context.Context) {
	s.lines = make(chan inputLine)
	go func() {
		defer close(s.lines)
		for s.in.Scan() {
			select {
			case s.lines <- inputLine{text: s.in.Text()}:
			case <-ctx.Done():
				return
			}
		}
		err := s.in.Err()
		if err == nil {
			err = errInputClosed
		}
		select {
		case s.lines <- inputLine{err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Shell) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", errInputClosed
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

func (s *Shell) print(a string) {
	fmt.Fprint(s.out, a)
}

func (s *Shell) println(a string) {
	fmt.Fprintln(s.out, a)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
