package scrape

// Per-site adapter specs and their default sources. Everything here is
// data: selectors, date format chains, link conventions, and page URL
// templates. The extraction engines in extract.go never branch on a site.

import (
	"github.com/dwillis/statement"
	"github.com/dwillis/statement/dates"
)

// marshallAJAXURL is the jet_smart_filters endpoint behind the Marshall
// press list. The widget settings are fixed; only paged varies.
const marshallAJAXURL = "https://www.marshall.senate.gov/wp-admin/admin-ajax.php" +
	"?action=jet_smart_filters&provider=jet-engine%%2Fpress-list" +
	"&defaults%%5Bpost_status%%5D%%5B%%5D=publish" +
	"&defaults%%5Bpost_type%%5D%%5B%%5D=press_releases" +
	"&defaults%%5Bposts_per_page%%5D=6&defaults%%5Bpaged%%5D=1" +
	"&settings%%5Blisitng_id%%5D=67853&settings%%5Bcolumns%%5D=1" +
	"&settings%%5Bcustom_post_types%%5D%%5B%%5D=press_releases" +
	"&settings%%5B_element_id%%5D=press-list&paged=%d"

func init() {
	Register("crapo", Spec{
		Kind:         KindList,
		Container:    "div.ArticleBlock",
		DateSelector: "p",
		DateFormats:  []dates.Format{dates.ShortDotted, dates.LongMonth},
	}, 1, PageTemplate{
		URLFormat: "https://www.crapo.senate.gov/media/newsreleases/?PageNum_rs=%d&",
		Domain:    "www.crapo.senate.gov",
	})

	Register("shaheen", Spec{
		Kind:         KindList,
		Container:    "div.ArticleBlock",
		TitleFrom:    ".ArticleTitle",
		DateSelector: "time",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.DottedAsSlash, dates.LongMonth},
	}, 1, PageTemplate{
		URLFormat: "https://www.shaheen.senate.gov/news/press?PageNum_rs=%d",
		Domain:    "www.shaheen.senate.gov",
	})

	Register("timscott", Spec{
		Kind:         KindList,
		Container:    ".jet-listing-grid .elementor-widget-wrap",
		Link:         "h3 a",
		DateSelector: "li span.elementor-icon-list-text",
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1, PageTemplate{
		URLFormat: "https://www.scott.senate.gov/media-center/press-releases/jsf/jet-engine:press-list/pagenum/%d/",
		Domain:    "www.scott.senate.gov",
	})

	Register("angusking", Spec{
		Kind:         KindList,
		Container:    "table tr",
		DateSelector: "td",
		DateFormats:  []dates.Format{dates.ShortSlash},
		LinkMode:     LinkDomain,
	}, 1, PageTemplate{
		URLFormat: "https://www.king.senate.gov/newsroom/press-releases/table?pagenum_rs=%d",
		Domain:    "www.king.senate.gov",
	})

	// One spec applied across many House sites that share the ASP.NET
	// document-query layout; each domain is an independent source.
	Register("documentquery", Spec{
		Kind:         KindList,
		Container:    "article",
		Link:         "h2 a",
		DateSelector: "time",
		DateAttr:     "datetime",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.ISODate, dates.LongMonth},
		LinkMode:     LinkPrefix,
		PathPrefix:   "/news/",
	}, 1,
		PageTemplate{URLFormat: "https://wassermanschultz.house.gov/news/documentquery.aspx?DocumentTypeID=27&Page=%d", Domain: "wassermanschultz.house.gov"},
		PageTemplate{URLFormat: "https://hern.house.gov/news/documentquery.aspx?DocumentTypeID=27&Page=%d", Domain: "hern.house.gov"},
		PageTemplate{URLFormat: "https://fletcher.house.gov/news/documentquery.aspx?DocumentTypeID=27&Page=%d", Domain: "fletcher.house.gov"},
	)

	Register("media-body", Spec{
		Kind:         KindList,
		Container:    "div.media-body",
		DateSelector: ".row .col-auto",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.ShortSlash, dates.LongMonth},
		LinkMode:     LinkDomain,
	}, 0,
		PageTemplate{URLFormat: "https://issa.house.gov/media/press-releases?page=%d", Domain: "issa.house.gov"},
		PageTemplate{URLFormat: "https://tenney.house.gov/media/press-releases?page=%d", Domain: "tenney.house.gov"},
	)

	Register("steube", Spec{
		Kind:         KindList,
		Container:    "article.item",
		TitleFrom:    "h3",
		DateSelector: "span.date",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1, PageTemplate{
		URLFormat: "https://steube.house.gov/category/press-releases/page/%d/",
		Domain:    "steube.house.gov",
	})

	Register("bera", Spec{
		Kind:         KindList,
		Container:    "article",
		DateSelector: "time",
		DateAttr:     "datetime",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.ISODate},
		LinkMode:     LinkPrefix,
		PathPrefix:   "/news/",
	}, 1, PageTemplate{
		URLFormat: "https://bera.house.gov/news/documentquery.aspx?DocumentTypeID=2402&Page=%d",
		Domain:    "bera.house.gov",
	})

	Register("meeks", Spec{
		Kind:         KindList,
		Container:    ".views-row",
		Link:         "a.h4",
		DateSelector: ".evo-card-date",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
		LinkMode:     LinkDomain,
		MaxItems:     10,
	}, 0, PageTemplate{
		URLFormat: "https://meeks.house.gov/media/press-releases?page=%d",
		Domain:    "meeks.house.gov",
	})

	Register("sykes", Spec{
		Kind:         KindList,
		Container:    "table#browser_table tbody tr",
		DateSelector: "time",
		DateFormats:  []dates.Format{dates.LongMonth},
		LinkMode:     LinkDomain,
	}, 1, PageTemplate{
		URLFormat: "https://sykes.house.gov/media/press-releases?PageNum_rs=%d",
		Domain:    "sykes.house.gov",
	})

	Register("barragan", Spec{
		Kind:         KindList,
		Container:    ".post",
		TitleFrom:    "h2",
		DateSelector: "p",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1, PageTemplate{
		URLFormat: "https://barragan.house.gov/category/news-releases/page/%d/",
		Domain:    "barragan.house.gov",
	})

	Register("castor", Spec{
		Kind:         KindList,
		Container:    "article",
		DateSelector: "time",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
		LinkMode:     LinkPrefix,
		PathPrefix:   "/news/",
	}, 1, PageTemplate{
		URLFormat: "https://castor.house.gov/news/documentquery.aspx?DocumentTypeID=821&Page=%d",
		Domain:    "castor.house.gov",
	})

	Register("marshall", Spec{
		Kind:         KindAJAX,
		ContentKey:   "content",
		Container:    ".elementor-widget-wrap",
		Link:         "h4 a",
		DateSelector: "span.elementor-post-info__item--type-date",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
		SourceLabel:  "https://www.marshall.senate.gov/newsroom/press-releases",
	}, 1, PageTemplate{
		URLFormat: marshallAJAXURL,
		Domain:    "www.marshall.senate.gov",
	})

	Register("hawley", Spec{
		Kind:         KindList,
		Container:    "article .post",
		Link:         "h2 a",
		DateSelector: "span.published",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1, PageTemplate{
		URLFormat: "https://www.hawley.senate.gov/press-releases/page/%d/",
		Domain:    "www.hawley.senate.gov",
	})

	Register("jetlisting-h2", Spec{
		Kind:         KindList,
		Container:    ".jet-listing-grid__item",
		Link:         "h2 a",
		DateSelector: "span.elementor-post-info__item--type-date",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1,
		PageTemplate{URLFormat: "https://www.lankford.senate.gov/newsroom/press-releases/?jsf=jet-engine:press-list&pagenum=%d", Domain: "www.lankford.senate.gov"},
		PageTemplate{URLFormat: "https://www.ricketts.senate.gov/newsroom/press-releases/?jsf=jet-engine:press-list&pagenum=%d", Domain: "www.ricketts.senate.gov"},
	)

	Register("barrasso", Spec{
		Kind:         KindList,
		Container:    "table tbody tr",
		DateSelector: "td.recordListDate",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.ShortSlash},
	}, 1, PageTemplate{
		URLFormat: "https://www.barrasso.senate.gov/public/index.cfm/news-releases?page=%d",
		Domain:    "www.barrasso.senate.gov",
	})

	// Senate Drupal sites render the date two sibling nodes before each
	// headline. Three domains diverge to long-month dates and the
	// republicanleader listing links to the mcconnell domain; both are
	// enumerated overrides, not inferred rules.
	Register("senate-drupal", Spec{
		Kind:         KindSiblingDate,
		Container:    "#newscontent h2",
		DateSiblings: 1,
		DateFormats:  []dates.Format{dates.ShortDotted},
		DomainDateFormats: map[string][]dates.Format{
			"www.tomudall.senate.gov":         {dates.LongMonth},
			"www.vanhollen.senate.gov":        {dates.LongMonth},
			"www.warren.senate.gov":           {dates.LongMonth},
			"www.republicanleader.senate.gov": {dates.DottedAsSlash},
		},
		Rewrites: map[string]Rewrite{
			"www.republicanleader.senate.gov": {
				Domain:  "mcconnell.senate.gov",
				URLFrom: "mcconnell.senate.gov",
				URLTo:   "www.republicanleader.senate.gov",
			},
		},
		LinkMode: LinkDomain,
	}, 1,
		PageTemplate{URLFormat: "https://www.hoeven.senate.gov/news/news-releases?PageNum_rs=%d", Domain: "www.hoeven.senate.gov"},
		PageTemplate{URLFormat: "https://www.murkowski.senate.gov/press/press-releases?PageNum_rs=%d", Domain: "www.murkowski.senate.gov"},
		PageTemplate{URLFormat: "https://www.republicanleader.senate.gov/newsroom/press-releases?PageNum_rs=%d", Domain: "www.republicanleader.senate.gov"},
		PageTemplate{URLFormat: "https://www.sullivan.senate.gov/newsroom/press-releases?PageNum_rs=%d", Domain: "www.sullivan.senate.gov"},
	)

	Register("senate-drupal-newscontent", Spec{
		Kind:         KindSiblingDate,
		Container:    "#newscontent h2",
		DateSiblings: 1,
		DateFormats:  []dates.Format{dates.ShortDotted, dates.LongMonth},
		LinkMode:     LinkDomain,
	}, 1,
		PageTemplate{URLFormat: "https://huffman.house.gov/media-center/press-releases?PageNum_rs=%d", Domain: "huffman.house.gov"},
		PageTemplate{URLFormat: "https://castro.house.gov/media-center/press-releases?PageNum_rs=%d", Domain: "castro.house.gov"},
		PageTemplate{URLFormat: "https://mikelevin.house.gov/media/press-releases?PageNum_rs=%d", Domain: "mikelevin.house.gov"},
	)

	Register("recordlist", Spec{
		Kind:         KindList,
		Container:    "table.table.recordList tr",
		Link:         "td:nth-child(3) a",
		TitleFrom:    "td:nth-child(3)",
		DateSelector: "td",
		DateFormats:  []dates.Format{dates.ShortSlash, dates.LongMonth},
		LinkMode:     LinkDomain,
	}, 1,
		PageTemplate{URLFormat: "https://emmer.house.gov/press-releases?page=%d", Domain: "emmer.house.gov"},
		PageTemplate{URLFormat: "https://fitzpatrick.house.gov/press-releases?page=%d", Domain: "fitzpatrick.house.gov"},
	)

	Register("article-block", Spec{
		Kind:          KindList,
		Container:     ".ArticleBlock",
		TitleFrom:     "h3",
		TitleOptional: true,
		DateSelector:  ".ArticleBlock__date",
		DateFormats:   []dates.Format{dates.LongMonth},
	}, 1,
		PageTemplate{URLFormat: "https://www.coons.senate.gov/news/press-releases?pagenum_rs=%d", Domain: "www.coons.senate.gov"},
		PageTemplate{URLFormat: "https://www.booker.senate.gov/news/press?pagenum_rs=%d", Domain: "www.booker.senate.gov"},
		PageTemplate{URLFormat: "https://www.cramer.senate.gov/news/press-releases?pagenum_rs=%d", Domain: "www.cramer.senate.gov"},
	)

	Register("article-block-h2", Spec{
		Kind:          KindList,
		Container:     ".ArticleBlock",
		TitleFrom:     "h2",
		TitleOptional: true,
		DateSelector:  ".ArticleBlock__date",
		DateFormats:   []dates.Format{dates.LongMonth},
	}, 1)

	Register("article-block-h2-date", Spec{
		Kind:          KindList,
		Container:     ".ArticleBlock",
		TitleFrom:     "h2",
		TitleOptional: true,
		DateSelector:  "p",
		DateFormats:   []dates.Format{dates.LongMonth},
	}, 1,
		PageTemplate{URLFormat: "https://www.blumenthal.senate.gov/newsroom/press?pagenum_rs=%d", Domain: "www.blumenthal.senate.gov"},
		PageTemplate{URLFormat: "https://www.collins.senate.gov/newsroom/press-releases?pagenum_rs=%d", Domain: "www.collins.senate.gov"},
		PageTemplate{URLFormat: "https://www.hirono.senate.gov/news/press-releases?pagenum_rs=%d", Domain: "www.hirono.senate.gov"},
		PageTemplate{URLFormat: "https://www.ernst.senate.gov/news/press-releases?pagenum_rs=%d", Domain: "www.ernst.senate.gov"},
	)

	Register("article-span-published", Spec{
		Kind:         KindList,
		Container:    "article",
		Link:         "h3 a",
		DateSelector: "span.published",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1,
		PageTemplate{URLFormat: "https://www.bennet.senate.gov/news/page/%d", Domain: "www.bennet.senate.gov"},
		PageTemplate{URLFormat: "https://www.hickenlooper.senate.gov/press/page/%d", Domain: "www.hickenlooper.senate.gov"},
	)

	Register("article-newsblocker", Spec{
		Kind:         KindList,
		Container:    "article",
		DateSelector: "time",
		DateAttr:     "datetime",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.ISODate, dates.LongMonth},
		LinkMode:     LinkPrefix,
		PathPrefix:   "/news/",
	}, 1,
		PageTemplate{URLFormat: "https://balderson.house.gov/news/documentquery.aspx?DocumentTypeID=27&Page=%d", Domain: "balderson.house.gov"},
		PageTemplate{URLFormat: "https://case.house.gov/news/documentquery.aspx?DocumentTypeID=27&Page=%d", Domain: "case.house.gov"},
	)

	Register("elementor-post-date", Spec{
		Kind:         KindList,
		Container:    ".elementor-post__text",
		TitleFrom:    "h2",
		DateSelector: ".elementor-post-date",
		DateRequired: true,
		DateFormats:  []dates.Format{dates.LongMonth},
	}, 1,
		PageTemplate{URLFormat: "https://www.sanders.senate.gov/media/press-releases/%d/", Domain: "www.sanders.senate.gov"},
		PageTemplate{URLFormat: "https://www.merkley.senate.gov/news/press-releases/%d/", Domain: "www.merkley.senate.gov"},
	)

	Register("react", Spec{
		Kind:      KindEmbedded,
		Container: `script#__NEXT_DATA__`,
		EmbeddedPath: []string{
			"props", "pageProps", "dehydratedState", "queries", "11",
			"state", "data", "posts", "edges",
		},
	}, 1,
		PageTemplate{URLFormat: "https://nikemawilliams.house.gov/press", Domain: "nikemawilliams.house.gov"},
		PageTemplate{URLFormat: "https://kiley.house.gov/press", Domain: "kiley.house.gov"},
	)

	// The House GOP roundup lists every anchor under one container and
	// dates the whole page from its Date query parameter. Record domains
	// come from the member links, never the roundup host.
	Register("house-gop", Spec{
		Kind:           KindList,
		Container:      "ul#membernews a",
		Link:           SelfLink,
		DateQueryParam: "Date",
		DateFormats:    []dates.Format{{Layout: "01/02/2006"}},
		DomainFromLink: true,
	}, 1)

	Register("senate-approps-majority", Spec{
		Kind:         KindSiblingDate,
		Container:    "#newscontent h2",
		DateSiblings: 1,
		DateFormats:  []dates.Format{dates.ShortDotted},
		LinkMode:     LinkDomain,
		Party:        statement.PartyMajority,
	}, 1, PageTemplate{
		URLFormat: "https://www.appropriations.senate.gov/news/majority?PageNum_rs=%d",
		Domain:    "www.appropriations.senate.gov",
	})

	Register("senate-approps-minority", Spec{
		Kind:         KindSiblingDate,
		Container:    "#newscontent h2",
		DateSiblings: 1,
		DateFormats:  []dates.Format{dates.ShortDotted},
		LinkMode:     LinkDomain,
		Party:        statement.PartyMinority,
	}, 1, PageTemplate{
		URLFormat: "https://www.appropriations.senate.gov/news/minority?PageNum_rs=%d",
		Domain:    "www.appropriations.senate.gov",
	})

	Register("senate-banking-majority", Spec{
		Kind:         KindList,
		Container:    "#browser_table tr",
		Link:         "td:nth-child(3) a",
		TitleFrom:    "td:nth-child(3)",
		DateSelector: "td",
		DateFormats:  []dates.Format{dates.ShortSlash},
		Party:        statement.PartyMajority,
	}, 1, PageTemplate{
		URLFormat: "https://www.banking.senate.gov/newsroom/majority-press-releases?PageNum_rs=%d",
		Domain:    "www.banking.senate.gov",
	})
}
