package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/giovaniif/stock-dashboard/domain/item"
	infra "github.com/giovaniif/stock-dashboard/infra"
	"github.com/giovaniif/stock-dashboard/infra/requestid"
	"github.com/giovaniif/stock-dashboard/infra/tracing"
)

type StockGatewayHttp struct {
	httpClient *http.Client
	url        string
}

func NewStockGatewayHttp(httpClient *http.Client, url string) *StockGatewayHttp {
	return &StockGatewayHttp{
		httpClient: httpClient,
		url:        url,
	}
}

func (s *StockGatewayHttp) FetchStock(ctx context.Context) ([]item.StockRow, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestid.Generate())
	tracing.Inject(ctx, req.Header)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, infra.NewTimeoutError("timeout fetching stock status")
		}
		return nil, infra.NewNetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGatewayTimeout {
		return nil, infra.NewTimeoutError("timeout fetching stock status")
	}
	if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
		return nil, infra.NewNetworkError("server error fetching stock status")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, infra.NewUnexpectedStatusError(resp.StatusCode)
	}

	var rows []item.StockRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, infra.NewDecodeError(err)
	}
	if rows == nil {
		rows = []item.StockRow{}
	}
	return rows, nil
}
