package dto

// YahooChartResponse is the v8 chart endpoint payload. Price arrays may contain nulls.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
				RegularMarketPrice float64  `json:"regularMarketPrice"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
				PreviousClose      *float64 `json:"previousClose"`
				RegularMarketVol   *int64   `json:"regularMarketVolume"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"chart"`
}

type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooValue is the {"raw": ..., "fmt": ...} wrapper used by quoteSummary.
type YahooValue struct {
	Raw *float64 `json:"raw"`
}

type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []YahooQuoteSummaryResult `json:"result"`
		Error  *YahooError               `json:"error"`
	} `json:"quoteSummary"`
}

type YahooQuoteSummaryResult struct {
	Price struct {
		LongName                   string     `json:"longName"`
		ShortName                  string     `json:"shortName"`
		RegularMarketPrice         YahooValue `json:"regularMarketPrice"`
		RegularMarketPreviousClose YahooValue `json:"regularMarketPreviousClose"`
		RegularMarketVolume        YahooValue `json:"regularMarketVolume"`
		MarketCap                  YahooValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE   YahooValue `json:"trailingPE"`
		PriceToSales YahooValue `json:"priceToSalesTrailing12Months"`
		Beta         YahooValue `json:"beta"`
		MarketCap    YahooValue `json:"marketCap"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		PEGRatio            YahooValue `json:"pegRatio"`
		PriceToBook         YahooValue `json:"priceToBook"`
		EnterpriseValue     YahooValue `json:"enterpriseValue"`
		EnterpriseToRevenue YahooValue `json:"enterpriseToRevenue"`
		EnterpriseToEbitda  YahooValue `json:"enterpriseToEbitda"`
		TrailingEps         YahooValue `json:"trailingEps"`
		BookValue           YahooValue `json:"bookValue"`
		SharesOutstanding   YahooValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		CurrentPrice            YahooValue `json:"currentPrice"`
		ReturnOnEquity          YahooValue `json:"returnOnEquity"`
		ReturnOnAssets          YahooValue `json:"returnOnAssets"`
		ProfitMargins           YahooValue `json:"profitMargins"`
		DebtToEquity            YahooValue `json:"debtToEquity"`
		CurrentRatio            YahooValue `json:"currentRatio"`
		RevenueGrowth           YahooValue `json:"revenueGrowth"`
		EarningsGrowth          YahooValue `json:"earningsGrowth"`
		FreeCashflow            YahooValue `json:"freeCashflow"`
		OperatingCashflow       YahooValue `json:"operatingCashflow"`
		TotalDebt               YahooValue `json:"totalDebt"`
		RecommendationKey       string     `json:"recommendationKey"`
		NumberOfAnalystOpinions YahooValue `json:"numberOfAnalystOpinions"`
	} `json:"financialData"`
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	BalanceSheetHistory struct {
		Statements []struct {
			TotalAssets             YahooValue `json:"totalAssets"`
			TotalCurrentAssets      YahooValue `json:"totalCurrentAssets"`
			TotalCurrentLiabilities YahooValue `json:"totalCurrentLiabilities"`
		} `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory struct {
		Statements []struct {
			TotalCashFromOperatingActivities YahooValue `json:"totalCashFromOperatingActivities"`
		} `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
	IncomeStatementHistory struct {
		Statements []struct {
			NetIncome YahooValue `json:"netIncome"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
}

type YahooOptionsResponse struct {
	OptionChain struct {
		Result []struct {
			ExpirationDates []int64 `json:"expirationDates"`
			Options         []struct {
				ExpirationDate int64              `json:"expirationDate"`
				Calls          []YahooOptionQuote `json:"calls"`
				Puts           []YahooOptionQuote `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"optionChain"`
}

type YahooOptionQuote struct {
	Strike            float64  `json:"strike"`
	Volume            *float64 `json:"volume"`
	ImpliedVolatility *float64 `json:"impliedVolatility"`
}

type YahooSearchResponse struct {
	News []struct {
		Title     string `json:"title"`
		Publisher string `json:"publisher"`
		Link      string `json:"link"`
	} `json:"news"`
}
