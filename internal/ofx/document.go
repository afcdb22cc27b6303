package ofx

import (
	"io"
	"text/template"
	"time"
)

// documentText is the OFX 1.x SGML document layout this tool has
// emitted since its earliest versions. GnuCash and HomeBank both accept
// it as-is, so the text, comments and whitespace stay untouched.
const documentText = `
<OFX>
   <SIGNONMSGSRSV1>
      <SONRS>                            <!-- Begin signon -->
         <STATUS>                        <!-- Begin status aggregate -->
            <CODE>0</CODE>               <!-- OK -->
            <SEVERITY>INFO</SEVERITY>
         </STATUS>
         <DTSERVER>{{.Now}}</DTSERVER>   <!-- Oct. 29, 1999, 10:10:03 am -->
         <LANGUAGE>ENG</LANGUAGE>        <!-- Language used in response -->
         <DTPROFUP>{{.Now}}</DTPROFUP>   <!-- Last update to profile-->
         <DTACCTUP>{{.Now}}</DTACCTUP>   <!-- Last account update -->
         <FI>                            <!-- ID of receiving institution -->
            <ORG>NCH</ORG>               <!-- Name of ID owner -->
            <FID>1001</FID>              <!-- Actual ID -->
         </FI>
      </SONRS>                           <!-- End of signon -->
   </SIGNONMSGSRSV1>
   <BANKMSGSRSV1>
      <STMTTRNRS>                        <!-- Begin response -->
         <TRNUID>1001</TRNUID>           <!-- Client ID sent in request -->
         <STATUS>                     <!-- Start status aggregate -->
            <CODE>0</CODE>            <!-- OK -->
            <SEVERITY>INFO</SEVERITY>
         </STATUS>{{range .Accounts}}
        <STMTRS>                         <!-- Begin statement response -->
           <CURDEF>EUR</CURDEF>
           <BANKACCTFROM>                <!-- Identify the account -->
              <BANKID>RABONL2U</BANKID> <!-- Routing transit or other FI ID -->
              <ACCTID>{{.Account}}</ACCTID> <!-- Account number -->
              <ACCTTYPE>CHECKING</ACCTTYPE><!-- Account type -->
           </BANKACCTFROM>               <!-- End of account ID -->
           <BANKTRANLIST>                <!-- Begin list of statement trans. -->
              <DTSTART>{{$.MinDate}}</DTSTART>
              <DTEND>{{$.MaxDate}}</DTEND>{{range .Transactions}}
                  <STMTTRN>
                     <TRNTYPE>{{.Type}}</TRNTYPE>
                     <DTPOSTED>{{.DatePosted}}</DTPOSTED>
                     <TRNAMT>{{.Amount}}</TRNAMT>
                     <FITID>{{.FitID}}</FITID>
                     <NAME>{{.Name}}</NAME>
                     <BANKACCTTO>
                        <BANKID></BANKID>
                        <ACCTID>{{.AccountTo}}</ACCTID>
                        <ACCTTYPE>CHECKING</ACCTTYPE>
                     </BANKACCTTO>
                     <MEMO>{{.Memo}}</MEMO>
                  </STMTTRN>{{end}}
              </BANKTRANLIST>                   <!-- End list of statement                       trans. -->
              <LEDGERBAL>                       <!-- Ledger balance                   aggregate -->
               <BALAMT>0</BALAMT>
               <DTASOF>199910291120</DTASOF><!-- Bal date: 10/29/99, 11:20 am -->
            </LEDGERBAL>                      <!-- End ledger balance -->
         </STMTRS>{{end}}
      </STMTTRNRS>                        <!-- End of transaction -->
   </BANKMSGSRSV1>
</OFX>
      `

var documentTmpl = template.Must(template.New("ofx").Parse(documentText))

type documentData struct {
	Now string
	*Statement
}

// WriteDocument renders the statement as an OFX document, dated with
// the given wall clock.
func WriteDocument(w io.Writer, stmt *Statement, now time.Time) error {
	return documentTmpl.Execute(w, documentData{now.Format("20060102"), stmt})
}
