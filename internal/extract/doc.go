// Package extract turns the faculty listing page into FacultyRecords.
//
// The page is partitioned into detail blocks (one per person). Each block
// carries a name heading and a paragraph of labeled fields:
//
//	<div class="clearfix">
//	  <h2>Jane Doe</h2>
//	  <p>
//	    <strong>Title:</strong> Professor<br>
//	    <strong>Office:</strong> 8-49<br>
//	    <strong>Phone:</strong> (909) 869-1234<br>
//	    <strong>Email:</strong> <a href="mailto:jdoe@cpp.edu">jdoe@cpp.edu</a><br>
//	    <strong>Website:</strong> <a href="https://www.cpp.edu/~jdoe">site</a>
//	  </p>
//	</div>
//
// Fields are classified by their label text, not by position, so blocks
// that omit or reorder fields still parse. A block without a name is
// dropped; every other missing field falls back to a sentinel value.
package extract
